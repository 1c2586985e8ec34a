//go:build darwin

package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// Watcher reports file changes using kqueue
type Watcher struct {
	kq       int
	mu       sync.Mutex
	watchMap map[int]string
	deb      *debouncer
	done     chan struct{}
	once     sync.Once
}

// New creates a watcher that calls onChange once a changed file has been
// quiet for delay
func New(delay time.Duration, onChange func(string)) (*Watcher, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("kqueue failed: %w", err)
	}
	return &Watcher{
		kq:       kq,
		watchMap: make(map[int]string),
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
	fd, err := unix.Open(absPath, unix.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", absPath, err)
	}
	event := unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_VNODE,
		Flags:  unix.EV_ADD | unix.EV_CLEAR,
		Fflags: unix.NOTE_WRITE | unix.NOTE_ATTRIB,
	}
	if _, err := unix.Kevent(w.kq, []unix.Kevent_t{event}, nil, nil); err != nil {
		unix.Close(fd)
		return fmt.Errorf("failed to add kevent for %s: %w", absPath, err)
	}
	w.mu.Lock()
	w.watchMap[fd] = absPath
	w.mu.Unlock()
	return nil
}

// Watch delivers events until Close is called
func (w *Watcher) Watch() {
	events := make([]unix.Kevent_t, 16)
	timeout := unix.NsecToTimespec(int64(200 * time.Millisecond))
	for {
		select {
		case <-w.done:
			return
		default:
		}

		n, err := unix.Kevent(w.kq, nil, events, &timeout)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if VerboseMode {
				fmt.Fprintf(os.Stderr, "watch: reading kevent: %v\n", err)
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}
		for i := 0; i < n; i++ {
			w.mu.Lock()
			path := w.watchMap[int(events[i].Ident)]
			w.mu.Unlock()
			if path != "" {
				w.deb.trigger(path)
			}
		}
	}
}

// Close stops Watch and releases every descriptor
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.deb.stop()
		w.mu.Lock()
		for fd := range w.watchMap {
			unix.Close(fd)
		}
		w.mu.Unlock()
		err = unix.Close(w.kq)
	})
	return err
}
