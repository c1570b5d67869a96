package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay coalesces the burst of fsnotify events editors emit for a
// single save (write + chmod, or create + rename).
const debounceDelay = 100 * time.Millisecond

// Watcher reloads the store when its configuration file changes on disk.
// It watches the containing directory rather than the file itself so that
// editors which save via rename keep being observed.
type Watcher struct {
	fw    *fsnotify.Watcher
	store *Store
	log   zerolog.Logger

	mu     sync.Mutex
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// Watch starts watching the store's configuration file for external
// changes. Invalid file states (mid-save, syntax errors) keep the previous
// snapshot and log a warning.
func Watch(store *Store, log zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("settings: create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, fmt.Errorf("settings: watch %q: %w", store.Path(), err)
	}

	w := &Watcher{
		fw:    fw,
		store: store,
		log:   log,
		done:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Close stops watching. It is safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fw.Close()
	w.wg.Wait()
	return err
}

// run consumes fsnotify events, debounces them, and triggers reloads.
func (w *Watcher) run() {
	defer w.wg.Done()

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-timerC:
			if err := w.store.Reload(); err != nil {
				w.log.Warn().Err(err).Msg("config reload failed; keeping previous settings")
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("config watcher error")

		case <-w.done:
			return
		}
	}
}
