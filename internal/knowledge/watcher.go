package knowledge

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 500 * time.Millisecond

// Change reports that the watched document was written, replaced or removed
type Change struct {
	Path    string
	Removed bool
	At      time.Time
}

// Watcher monitors a single knowledge document.
// The parent directory is watched so that atomic rename-on-save is seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// NewWatcher creates a watcher for path. A non-positive debounce uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

// Watch starts monitoring and emits one Change per debounced burst.
// The channel is closed when ctx is done or the watcher is stopped.
func (w *Watcher) Watch(ctx context.Context) (<-chan Change, error) {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return nil, err
	}

	changes := make(chan Change, 1)

	go func() {
		defer close(changes)

		var (
			timer   *time.Timer
			fire    <-chan time.Time
			removed bool
		)
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}

				// a later create after rename means the file came back
				removed = event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)

				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(w.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				select {
				case changes <- Change{Path: w.path, Removed: removed, At: time.Now()}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn().Err(err).Str("path", w.path).Msg("knowledge watcher error")
			}
		}
	}()

	return changes, nil
}

// Stop releases the underlying watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
