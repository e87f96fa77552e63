package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/logger"
	"github.com/nikbrunner/folio/internal/storage"
	"github.com/nikbrunner/folio/internal/tui"
)

// runTUI opens the terminal gallery.
func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// The gallery owns the terminal, so logs only go to a file
	log := logger.Nop()
	if logFile != "" {
		fileLog, closeFn, err := logger.NewFile(logFile, verbose)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer func() { _ = closeFn() }()
		log = fileLog
	}

	src := openSource(cfg)
	app := tui.NewApp(tui.AppParams{
		Source:      src,
		Title:       cfg.Title,
		Compact:     cfg.Compact,
		Suggestions: cfg.Suggestions,
		Logger:      log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if fs, ok := src.(*storage.FileSource); ok {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		err := storage.Watch(ctx, fs.Path(), log, func() {
			p.Send(tui.ReloadMsg{})
		})
		if err != nil {
			log.Warn("live reload disabled", zap.Error(err))
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run gallery: %w", err)
	}
	return nil
}
