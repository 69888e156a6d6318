package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// pollInterval is how often Watch checks the file when fsnotify is unavailable.
const pollInterval = 250 * time.Millisecond

// Watch reloads the catalog whenever its file changes, until ctx is done.
// It uses fsnotify with a polling fallback. Failed reloads are logged and
// keep the previous messages.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return ErrNoSource
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		c.watchPolling(ctx)
		return nil
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		c.watchPolling(ctx)
		return nil
	}

	c.watchEvents(ctx, watcher)
	return nil
}

func (c *Catalog) watchEvents(ctx context.Context, watcher *fsnotify.Watcher) {
	baseName := filepath.Base(c.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c.reloadAndReport()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			c.log().Warn("catalog watcher error", slog.String("path", c.path), slog.Any("error", err))
		}
	}
}

func (c *Catalog) watchPolling(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last time.Time
	if info, err := os.Stat(c.path); err == nil {
		last = info.ModTime()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(c.path)
			if err != nil || !info.ModTime().After(last) {
				continue
			}
			last = info.ModTime()
			c.reloadAndReport()
		}
	}
}

func (c *Catalog) reloadAndReport() {
	err := c.Reload()
	if err != nil {
		c.log().Warn("catalog reload failed", slog.String("path", c.path), slog.Any("error", err))
	} else {
		c.log().Info("catalog reloaded", slog.String("path", c.path), slog.Int("messages", len(c.Names())))
	}
	if c.onReload != nil {
		c.onReload(err)
	}
}
