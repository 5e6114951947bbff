// Package watcher reports changes to individual files, such as the
// configuration file and open documents.
//
// Each file is watched through its parent directory so that editors which
// save by writing a temporary file and renaming it over the original are
// still noticed. Rapid changes to one file are coalesced into a single
// event.
package watcher

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotWatching   = errors.New("path is not being watched")
)

// DefaultDebounce is the quiet period before an event is delivered.
const DefaultDebounce = 100 * time.Millisecond

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates the file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates the file was written to.
	OpWrite
	// OpRemove indicates the file was removed.
	OpRemove
	// OpRename indicates the file was renamed away.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "multiple"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op combines every operation seen during the debounce window.
	Op Op

	// Time is when the last operation was seen.
	Time time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithBufferSize sets the capacity of the event channel.
func WithBufferSize(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.bufSize = n
		}
	}
}

// Watcher monitors files for changes.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	files    map[string]bool // watched file paths
	dirs     map[string]int  // watched directories and how many files use each
	pending  map[string]*pending
	debounce time.Duration
	bufSize  int

	events  chan Event
	errors  chan error
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// pending tracks a debounced event.
type pending struct {
	event Event
	timer *time.Timer
}

// New creates a watcher and starts its event loop.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]int),
		pending:  make(map[string]*pending),
		debounce: DefaultDebounce,
		bufSize:  16,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = make(chan Event, w.bufSize)
	w.errors = make(chan error, w.bufSize)

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Add starts watching path. The file does not need to exist yet, but its
// directory does. Adding a watched path again is a no-op.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if w.files[abs] {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if !w.files[abs] {
		return ErrNotWatching
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// Watched returns the watched file paths.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	return paths
}

// Events returns the event channel. It is closed by Close.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	for path, p := range w.pending {
		p.timer.Stop()
		delete(w.pending, path)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.wg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// processLoop handles incoming fsnotify events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handle filters events down to watched files and debounces them.
func (w *Watcher) handle(ev fsnotify.Event) {
	op := convertOp(ev.Op)
	if op == 0 {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || !w.files[path] {
		return
	}

	now := time.Now()
	if w.debounce == 0 {
		w.sendLocked(Event{Path: path, Op: op, Time: now})
		return
	}

	if p, ok := w.pending[path]; ok {
		p.event.Op |= op
		p.event.Time = now
		p.timer.Reset(w.debounce)
		return
	}
	p := &pending{event: Event{Path: path, Op: op, Time: now}}
	p.timer = time.AfterFunc(w.debounce, func() { w.flush(path) })
	w.pending[path] = p
}

// flush delivers the pending event for path.
func (w *Watcher) flush(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[path]
	if !ok || w.closed {
		return
	}
	delete(w.pending, path)
	w.sendLocked(p.event)
}

// sendLocked sends an event without blocking (must hold lock).
func (w *Watcher) sendLocked(ev Event) {
	select {
	case w.events <- ev:
	default:
		// Channel full, drop event
		w.sendError(errors.New("event channel full, dropping event for " + ev.Path))
	}
}

// sendError sends an error to the output channel.
func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Channel full, drop error
	}
}

// convertOp converts fsnotify.Op to Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
