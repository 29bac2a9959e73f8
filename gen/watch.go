package gen

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events editors emit on save.
const debounceDelay = 250 * time.Millisecond

// Watch regenerates the output whenever the schema file changes. It runs
// one generation up front, then blocks until ctx is canceled. onDone is
// invoked after every generation with its result; a nil onDone is allowed.
// Watching requires a schema file source.
func Watch(ctx context.Context, cfg *Config, onDone func(error)) error {
	if cfg.SchemaPath == "" {
		return NewConfigError("SchemaPath", nil, "watch requires a schema file")
	}
	if onDone == nil {
		onDone = func(error) {}
	}
	target, err := filepath.Abs(cfg.SchemaPath)
	if err != nil {
		return fmt.Errorf("erdviz: resolve %s: %w", cfg.SchemaPath, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("erdviz: start watcher: %w", err)
	}
	defer watcher.Close()
	// Watch the directory rather than the file: editors that save by
	// replacing the file would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("erdviz: watch %s: %w", filepath.Dir(target), err)
	}

	onDone(Generate(ctx, cfg))

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceDelay)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onDone(err)
		case <-pending:
			pending = nil
			onDone(Generate(ctx, cfg))
		}
	}
}
