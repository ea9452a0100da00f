// Package watcher triggers a model reload when the artifact file changes on
// disk. It supplements the manual reload endpoint; both funnel into the same
// registry reload path.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Reloader is the subset of the serving service the watcher drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// debounceWindow coalesces the event bursts a single file replace produces.
const debounceWindow = 250 * time.Millisecond

// Watcher reloads the model when the watched artifact path is written.
type Watcher struct {
	path string
	rl   Reloader
	log  zerolog.Logger
	fw   *fsnotify.Watcher
}

// New creates a watcher for the artifact at path. The parent directory is
// watched rather than the file itself so that atomic rename-over-replace
// (the usual deploy pattern) still produces events.
func New(path string, rl Reloader, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		path: path,
		rl:   rl,
		log:  log.With().Str("component", "watcher").Logger(),
		fw:   fw,
	}, nil
}

// Run blocks until ctx is canceled, reloading on relevant events. Reload
// failures are logged and swallowed; the previously loaded model keeps
// serving regardless.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()
	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceWindow)
			}
			pending = timer.C
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Error().Err(err).Msg("watch error")
		case <-pending:
			pending = nil
			w.log.Info().Str("path", w.path).Msg("artifact changed, reloading")
			if err := w.rl.Reload(ctx); err != nil {
				w.log.Error().Err(err).Msg("reload after change failed")
			}
		}
	}
}
