package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle before
// reloading the job.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a job file whenever it is written.
type Watcher struct {
	path     string
	debounce time.Duration

	mu       sync.Mutex
	onChange []func(*Job)

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	errChan chan error
	done    chan struct{}
}

// NewWatcher creates a watcher for the job file at path. A debounce of 0
// uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		debounce: debounce,
		ctx:      ctx,
		cancel:   cancel,
		errChan:  make(chan error, 1),
		done:     make(chan struct{}),
	}
}

// OnChange registers a callback invoked with every successfully reloaded job.
// Callbacks run one at a time on the watcher's goroutine; events arriving
// meanwhile are handled once the callback returns.
func (w *Watcher) OnChange(cb func(*Job)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, cb)
}

// Errors returns a channel receiving watch and reload errors. Errors are
// dropped while a previous one is still unread.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

// Start begins watching. The job file's directory is watched so editors that
// replace the file on save are followed.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.watcher = watcher

	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)

	// fire is nil while no reload is pending.
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	job, err := Load(w.path)
	if err != nil {
		w.report(fmt.Errorf("reload job: %w", err))
		return
	}

	w.mu.Lock()
	callbacks := append([]func(*Job){}, w.onChange...)
	w.mu.Unlock()

	for _, cb := range callbacks {
		cb(job)
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.errChan <- err:
	default:
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	w.cancel()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}
