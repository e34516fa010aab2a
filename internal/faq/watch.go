package faq

import (
	"context"
	"errors"
	"time"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
)

// reloadRetryInterval is how often a change that hit a running rebuild is retried
const reloadRetryInterval = 50 * time.Millisecond

// Watch reloads the knowledge document whenever it changes on disk.
// It blocks until ctx is done. Failed reloads are logged and the current
// snapshot stays in place.
func (e *Engine) Watch(ctx context.Context) error {
	path := e.Path()
	if path == "" {
		return ErrNoSource
	}

	w, err := knowledge.NewWatcher(path, e.opts.Debounce, e.logger)
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	e.logger.Info().Str("path", w.Path()).Msg("watching knowledge document")

	for change := range changes {
		if change.Removed {
			e.logger.Warn().Str("path", change.Path).Msg("knowledge document removed, keeping current index")
			continue
		}

		if err := e.loadWhenIdle(ctx, path); err != nil {
			if ctx.Err() != nil {
				break
			}
			e.logger.Error().Err(err).Str("path", change.Path).Msg("knowledge reload failed")
		}
	}

	return ctx.Err()
}

// loadWhenIdle loads path, waiting out any rebuild already running.
// That rebuild may have read the file before the change landed, so the
// change is applied once it releases the lock.
func (e *Engine) loadWhenIdle(ctx context.Context, path string) error {
	ticker := time.NewTicker(reloadRetryInterval)
	defer ticker.Stop()

	logged := false
	for {
		err := e.Load(ctx, path)
		if !errors.Is(err, ErrReloadInProgress) {
			return err
		}
		if !logged {
			e.logger.Info().Msg("reload already running, applying change after it finishes")
			logged = true
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
