package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	kerrors "github.com/sdex/configviewer/internal/errors"
	"github.com/sdex/configviewer/internal/settings"
	"github.com/sdex/configviewer/internal/source"
)

// DefaultDebounce is how long Watch waits after the last change before
// reloading. Android rewrites a store through a temporary file and a rename,
// which produces a burst of events.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures the watch workflow.
type WatchOptions struct {
	Source      source.Source
	Kind        settings.Kind
	Filter      settings.Filter
	HistoryPath string

	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration

	// OnEvent receives the initial load and every reload.
	OnEvent func(LoadEvent)
}

// Watch loads a store and reloads it whenever its file changes, until ctx is
// done. Only sources that read a local file can be watched.
//
// Returns ErrWatchUnsupported for other sources.
func Watch(ctx context.Context, opts WatchOptions) error {
	loc, ok := opts.Source.(source.Locator)
	if !ok {
		name := "<nil>"
		if opts.Source != nil {
			name = opts.Source.Name()
		}
		return fmt.Errorf("%w: %s", kerrors.ErrWatchUnsupported, name)
	}
	kind, err := settings.ParseKind(string(opts.Kind))
	if err != nil {
		return err
	}
	if err := opts.Filter.Validate(); err != nil {
		return err
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	path := filepath.Clean(loc.Locate(kind))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// The directory is watched because the file itself is replaced on
	// every write.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	loader := NewLoader(LoadOptions{
		Source:      opts.Source,
		Filter:      opts.Filter,
		HistoryPath: opts.HistoryPath,
	})
	defer loader.Close()

	loader.Start(ctx, kind)

	var timer *time.Timer
	var reload <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			reload = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watching %s: %w", path, err)

		case <-reload:
			reload = nil
			loader.Start(ctx, kind)

		case ev := <-loader.Results():
			if opts.OnEvent != nil {
				opts.OnEvent(ev)
			}
		}
	}
}
