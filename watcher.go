package homepage

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 500 * time.Millisecond

// ContentWatcher re-syncs notes into the store whenever the content
// directory changes, then calls onSync (typically cache invalidation).
type ContentWatcher struct {
	dir     string
	store   *Store
	onSync  func(n int)
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
}

// NewContentWatcher starts watching dir. Call Run to process events.
func NewContentWatcher(dir string, store *Store, logger zerolog.Logger, onSync func(n int)) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &ContentWatcher{dir: dir, store: store, onSync: onSync, logger: logger, watcher: w}, nil
}

// Run blocks until ctx is cancelled, syncing once per burst of changes.
// Syncs run on the calling goroutine, so none is in flight once Run returns.
func (cw *ContentWatcher) Run(ctx context.Context) {
	defer cw.watcher.Close()

	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			cw.logger.Info().Str("event", "content.watcher_stopped").Msg("content watcher stopped")
			return

		case <-fire:
			fire = nil
			cw.sync(ctx)

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			cw.logger.Debug().
				Str("event", "content.file_changed").
				Str("op", event.Op.String()).
				Str("path", event.Name).
				Msg("content changed")

			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
			} else {
				debounce.Reset(watchDebounce)
			}
			fire = debounce.C

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error().Err(err).Str("event", "content.watcher_error").Msg("content watcher error")
		}
	}
}

func (cw *ContentWatcher) sync(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := SyncNotes(ctx, cw.store, cw.dir)
	if err != nil {
		// Keep serving the last good set of notes.
		cw.logger.Error().Err(err).Str("event", "content.sync_failed").Msg("content sync failed")
		return
	}
	cw.logger.Info().Str("event", "content.synced").Int("notes", n).Msg("notes re-synced")
	if cw.onSync != nil {
		cw.onSync(n)
	}
}
