package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Watch reloads path into store whenever the file is written or recreated,
// until ctx is cancelled. Invalid files are logged and ignored so the game
// keeps its last good settings.
func Watch(ctx context.Context, path string, store *Store, logger *log.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: cannot create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file instead of writing it.
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				reload(abs, store, logger)

			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher error", "error", werr)
			}
		}
	}()

	return nil
}

func reload(path string, store *Store, logger *log.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("cannot read settings", "path", path, "error", err)
		return
	}
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("cannot parse settings, keeping previous", "path", path, "error", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("settings out of range, normalizing", "path", path, "error", err)
	}
	store.Replace(cfg)
	logger.Info("settings reloaded", "path", path)
}
