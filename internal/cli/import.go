package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/folio/internal/importer"
	"github.com/nikbrunner/folio/internal/storage"
)

var (
	importOutput string
	importForce  bool
)

var importCmd = &cobra.Command{
	Use:   "import <bookmarks.html>",
	Short: "Create a gallery document from a browser bookmarks export",
	Long: `Reads a Netscape bookmarks file (the HTML export of most browsers) and
writes a gallery document. Folders become sections; links to images, videos
and YouTube get the matching item type.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "document to write (default: the configured source)")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "overwrite an existing document")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	out := importOutput
	if out == "" {
		out = cfg.Source
	}
	if _, remote := storage.Open(out, nil).(*storage.HTTPSource); remote {
		return fmt.Errorf("cannot import into remote document %s (use --output)", out)
	}
	if _, err := os.Stat(out); err == nil && !importForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open bookmarks: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := importer.ParseBookmarks(f)
	if err != nil {
		return fmt.Errorf("parse bookmarks: %w", err)
	}

	if err := storage.Save(out, doc); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}

	cmd.Printf("Imported %d items in %d sections to %s\n", doc.ItemCount(), len(doc.Sections), out)
	return nil
}
