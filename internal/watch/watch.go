// Package watch reports changes to a layout file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/flashingpumpkin/splitter/internal/throttle"
	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the minimum time between two change notifications.
const DefaultInterval = 100 * time.Millisecond

// Watcher watches a single file. The file's directory is watched rather than
// the file itself so editors that save by renaming a temp file are seen.
//
// Bursts of events are coalesced: the first change of a burst is reported
// at once and the last one after the interval.
type Watcher struct {
	path     string
	fw       *fsnotify.Watcher
	throttle *throttle.Throttle

	changes chan struct{}
	errs    chan error
	done    chan struct{}

	closeOnce sync.Once
	closeErr  error
	wg        sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*options)

type options struct {
	interval time.Duration
}

// WithInterval sets the coalescing interval.
func WithInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// New starts watching path.
func New(path string, opts ...Option) (*Watcher, error) {
	o := options{interval: DefaultInterval}
	for _, opt := range opts {
		opt(&o)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:     abs,
		fw:       fw,
		throttle: throttle.New(o.interval),
		changes:  make(chan struct{}, 1),
		errs:     make(chan error, 1),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Changes delivers one value per coalesced change.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run calls onChange for every change until ctx is done or the watcher is
// closed. A watcher error ends Run and is returned.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case err := <-w.errs:
			return err
		case <-w.changes:
			onChange()
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fw.Close()
		w.wg.Wait()
		w.throttle.Stop()
	})
	return w.closeErr
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.throttle.Do(w.notify)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Some events were lost; the file may have changed.
				w.throttle.Do(w.notify)
				continue
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// notify records a change without blocking; an unread change already covers it.
func (w *Watcher) notify() {
	select {
	case <-w.done:
	case w.changes <- struct{}{}:
	default:
	}
}
