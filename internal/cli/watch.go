package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/pipeline"
)

// watchDebounce groups the burst of events an editor emits for one save.
const watchDebounce = 150 * time.Millisecond

// watchRender renders once, then again after every change to the document
// until ctx is canceled. Render errors are reported and watching continues.
func (c *CLI) watchRender(ctx context.Context, opts pipeline.Options, ro renderOpts) error {
	logger := loggerFromContext(ctx)
	render := func() {
		if err := c.runRender(ctx, opts, ro); err != nil && ctx.Err() == nil {
			printError("%s", errors.UserMessage(err))
		}
	}

	render()
	printInfo("Watching %s (Ctrl+C to stop)", opts.Path)

	return watchFile(ctx, opts.Path, watchDebounce, func() {
		logger.Debug("document changed", "path", opts.Path)
		render()
	})
}

// watchFile calls onChange after path is written, created or replaced.
// Events within debounce of each other trigger a single call. The parent
// directory is watched so that editors replacing the file by rename are
// followed.
func watchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Remove) {
				printWarning("%s was removed; waiting for it to reappear", path)
				continue
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}
