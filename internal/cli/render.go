package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/exporter"
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/storage"
)

var (
	renderQuery   string
	renderCompact bool
	renderOutput  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the gallery to a standalone HTML page",
	Long: `Writes the gallery as a single HTML file with inline styles. Modals
open without a server; search is fixed to --query at render time.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderQuery, "query", "q", "", "filter the rendered gallery")
	renderCmd.Flags().BoolVar(&renderCompact, "compact", false, "render the compact view")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output file (default ./gallery-YYYY-MM-DD.html)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	log, done, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer done()

	src := openSource(cfg)
	doc := storage.LoadOrEmpty(cmd.Context(), src, cfg.Title, log)

	vm := gallery.Project(gallery.AppState{
		Document: doc,
		Query:    renderQuery,
		Compact:  renderCompact || cfg.Compact,
	}, gallery.Options{DefaultTitle: cfg.Title, Suggestions: cfg.Suggestions})

	path := renderOutput
	if path == "" {
		path = exporter.DefaultExportPath()
	}
	if err := exporter.WriteFile(path, vm, exporter.Options{MarkdownNotes: cfg.MarkdownNotes}); err != nil {
		return err
	}

	log.Debug("rendered gallery", zap.String("path", path), zap.Int("items", vm.TotalVisible))
	cmd.Printf("Rendered %d items to %s\n", vm.TotalVisible, path)
	return nil
}
