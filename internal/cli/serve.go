package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/logger"
	"github.com/nikbrunner/folio/internal/server"
	"github.com/nikbrunner/folio/internal/storage"
)

var (
	serveAddr    string
	serveLogJSON bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery over HTTP",
	Long: `Serves the gallery page with server-side search. A local data file is
watched and reloaded on change; the page always reflects the last good load.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveLogJSON, "log-json", false, "log as JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Verbose: verbose, JSON: serveLogJSON, Output: cmd.ErrOrStderr()})
	defer func() { _ = log.Sync() }()

	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	src := openSource(cfg)
	var watchPath string
	if fs, ok := src.(*storage.FileSource); ok {
		watchPath = fs.Path()
	}

	srv := server.New(server.Options{
		Addr:          addr,
		Source:        src,
		WatchPath:     watchPath,
		Title:         cfg.Title,
		Suggestions:   cfg.Suggestions,
		MarkdownNotes: cfg.MarkdownNotes,
		Logger:        log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
