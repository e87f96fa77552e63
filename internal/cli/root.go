// Package cli wires folio's commands.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/config"
	"github.com/nikbrunner/folio/internal/logger"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/storage"
)

var version = "dev"

var (
	dataPath   string
	configPath string
	verbose    bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "A searchable portfolio gallery",
	Long: `folio shows a portfolio document (sections of images, videos and
YouTube links) as a searchable gallery. Without a subcommand it opens the
terminal gallery; serve and render produce the web version.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "gallery document (path or http(s) URL); overrides the config")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/folio/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (the terminal gallery logs nowhere otherwise)")
}

// SetVersion sets the version reported by `folio version`.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings reads the config file and applies flag overrides.
func loadSettings() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("config path: %w", err)
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	if dataPath != "" {
		cfg.Source = dataPath
	}
	return cfg, nil
}

// newLogger builds the console logger for non-interactive commands.
func newLogger(cmd *cobra.Command) (*zap.Logger, func(), error) {
	if logFile != "" {
		log, closeFn, err := logger.NewFile(logFile, verbose)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return log, func() { _ = closeFn() }, nil
	}

	log := logger.New(logger.Options{Verbose: verbose, Output: cmd.ErrOrStderr()})
	return log, func() { _ = log.Sync() }, nil
}

func openSource(cfg *config.Config) storage.Source {
	client := &http.Client{Timeout: time.Duration(cfg.FetchTimeoutSeconds) * time.Second}
	return storage.Open(cfg.Source, client)
}

// loadDocument loads the configured document, failing loudly.
// The gallery views fall back to an empty document instead.
func loadDocument(ctx context.Context, cfg *config.Config) (*model.Document, storage.Source, error) {
	src := openSource(cfg)
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, src, fmt.Errorf("load %s: %w", src, err)
	}
	return doc, src, nil
}
