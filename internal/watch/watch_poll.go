//go:build !linux && !darwin

package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// pollInterval is how often modification times are checked
const pollInterval = 250 * time.Millisecond

// Watcher reports file changes by polling modification times
type Watcher struct {
	mu       sync.Mutex
	watchMap map[string]time.Time
	deb      *debouncer
	done     chan struct{}
	once     sync.Once
}

// New creates a watcher that calls onChange once a changed file has been
// quiet for delay
func New(delay time.Duration, onChange func(string)) (*Watcher, error) {
	return &Watcher{
		watchMap: make(map[string]time.Time),
		deb:      newDebouncer(delay, onChange),
		done:     make(chan struct{}),
	}, nil
}

// Add starts watching path
func (w *Watcher) Add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.watchMap[absPath] = info.ModTime()
	w.mu.Unlock()
	return nil
}

// Watch delivers events until Close is called
func (w *Watcher) Watch() {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.checkFiles()
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) checkFiles() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, lastMod := range w.watchMap {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(lastMod) {
			w.watchMap[path] = info.ModTime()
			w.deb.trigger(path)
		}
	}
}

// Close stops Watch
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.deb.stop()
	})
	return nil
}
