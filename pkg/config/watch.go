package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

// reloadDelay debounces editor save bursts (write + chmod + rename).
const reloadDelay = 500 * time.Millisecond

// WatchMeasured watches a measured-format configuration file and
// re-parses it on every change, calling onUpdate with the fresh result.
// The calibration assistant appends one line per probed point, so each
// save yields a progressively more complete configuration. Blocks until
// ctx is cancelled.
func WatchMeasured(ctx context.Context, path string, b *board.Board, onUpdate func(*engine.PlacementConfig, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	log := telemetry.FromContext(ctx).NewComponentLogger("config-watch")
	log.WithConfigFile(path).Infof("Watching measured configuration")

	// Parse once up front so the caller sees the current state before
	// the first save.
	onUpdate(LoadMeasured(ctx, path, b))

	var reloadTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debugf("Configuration file changed (%s)", event.Op)

			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			reloadTimer = time.AfterFunc(reloadDelay, func() {
				onUpdate(LoadMeasured(ctx, path, b))
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Errorf("Watcher error")
		}
	}
}
