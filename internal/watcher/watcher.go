// Package watcher reports external writes to the data file so an open
// session can refresh its lists when another process edits the records.
package watcher

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadEvent signals that the data file changed on disk.
type ReloadEvent struct {
	Path string
	At   time.Time
}

// Watcher observes a single SQLite data file, plus its journal siblings,
// and coalesces bursts of write events into one reload signal.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	Events    chan ReloadEvent
	done      chan struct{}

	path     string
	debounce time.Duration
}

func New(dbPath string) (*Watcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory, not the file: editors and SQLite replace and
	// append sibling files rather than writing in place.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		Events:    make(chan ReloadEvent, 10),
		done:      make(chan struct{}),
		path:      abs,
		debounce:  250 * time.Millisecond,
	}, nil
}

func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.done)
	w.fsWatcher.Close()
}

func (w *Watcher) run() {
	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(w.debounce)
				pendingC = pending.C
			} else {
				if !pending.Stop() {
					select {
					case <-pending.C:
					default:
					}
				}
				pending.Reset(w.debounce)
			}

		case <-pendingC:
			pending = nil
			pendingC = nil
			select {
			case w.Events <- ReloadEvent{Path: w.path, At: time.Now()}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: %v", err)
		}
	}
}

// matches reports whether the event concerns the data file itself or a
// SQLite journal sibling (-wal, -shm, -journal).
func (w *Watcher) matches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	switch abs {
	case w.path, w.path + "-wal", w.path + "-shm", w.path + "-journal":
		return true
	}
	return false
}
