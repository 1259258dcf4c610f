package services

import (
	"time"

	"github.com/fsnotify/fsnotify"
)

// CorpusWatchDebounce is the debounce window for watcher events.
const CorpusWatchDebounce = 600 * time.Millisecond

// CorpusWatchService watches the corpus directory and signals when
// translation files are added, changed or removed.
type CorpusWatchService struct {
	Started     bool
	Waiting     bool
	Dir         string
	Events      chan struct{}
	Done        chan struct{}
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	logf        func(string, ...any)
}

// NewCorpusWatchService creates a new CorpusWatchService.
func NewCorpusWatchService(logf func(string, ...any)) *CorpusWatchService {
	return &CorpusWatchService{logf: logf}
}

// Start initialises the watcher on the corpus directory and starts the
// background goroutine. The corpus layout is flat, so only the
// directory itself is watched.
func (w *CorpusWatchService) Start(dir string) (bool, error) {
	if w.Started || dir == "" {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Dir = dir
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *CorpusWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *CorpusWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *CorpusWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *CorpusWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < CorpusWatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// Signal notifies listeners of watcher activity.
func (w *CorpusWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

func (w *CorpusWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("corpus watcher error: %v", err)
		}
	}
}

func (w *CorpusWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
