package storage

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// Watch calls onChange whenever the file at path is written, created or
// replaced, until ctx is cancelled. The parent directory is watched so that
// atomic rename-on-save is picked up.
func Watch(ctx context.Context, path string, log *zap.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.NewTimer(watchDebounce)
				fire = timer.C

			case <-fire:
				fire = nil
				log.Debug("document changed", zap.String("path", abs))
				onChange()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", zap.String("path", abs), zap.Error(err))
			}
		}
	}()

	return nil
}
