// Package watcher reloads the practice catalog when its file changes on
// disk. Editors tend to produce bursts of write/rename events per save, so
// changes are debounced with a quiet period before the reload callback runs.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/practice-graph/pkg/logging"
)

// DefaultQuietPeriod is how long the file must stay unchanged before a
// reload fires.
const DefaultQuietPeriod = 250 * time.Millisecond

// CatalogWatcher watches a single catalog file.
type CatalogWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	quietPeriod time.Duration
	reload      func()
}

// New creates a watcher for the catalog at path. The reload callback runs
// after each debounced batch of changes.
func New(path string, reload func()) (*CatalogWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	return &CatalogWatcher{
		watcher:     fsw,
		path:        abs,
		quietPeriod: DefaultQuietPeriod,
		reload:      reload,
	}, nil
}

// Start begins watching until the context is cancelled. Watching the parent
// directory rather than the file itself survives the rename-and-replace
// save strategy most editors use.
func (cw *CatalogWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(cw.path)
	if err := cw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	logging.Info("watching catalog", "path", cw.path)

	go cw.processEvents(ctx)
	return nil
}

func (cw *CatalogWatcher) processEvents(ctx context.Context) {
	defer cw.watcher.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !cw.matches(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logging.Debug("catalog file changed", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(cw.quietPeriod)
				timerC = timer.C
			} else {
				timer.Reset(cw.quietPeriod)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			logging.Info("catalog changed, reloading", "path", cw.path)
			cw.reload()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}

func (cw *CatalogWatcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == cw.path
}
