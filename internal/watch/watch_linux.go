//go:build linux

package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Watcher reports file changes using inotify
type Watcher struct {
	fd       int
	mu       sync.Mutex
	watchMap map[int]string
	deb      *debouncer
	done     chan struct{}
	once     sync.Once
}

// New creates a watcher that calls onChange once a changed file has been
// quiet for delay
func New(delay time.Duration, onChange func(string)) (*Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %w", err)
	}
	return &Watcher{
		fd:       fd,
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
	wd, err := unix.InotifyAddWatch(w.fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	w.mu.Lock()
	w.watchMap[wd] = absPath
	w.mu.Unlock()
	return nil
}

// Watch delivers events until Close is called
func (w *Watcher) Watch() {
	buf := make([]byte, unix.SizeofInotifyEvent*64)
	for {
		select {
		case <-w.done:
			return
		default:
		}

		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				time.Sleep(50 * time.Millisecond)
				continue
			}
			if VerboseMode {
				fmt.Fprintf(os.Stderr, "watch: reading inotify events: %v\n", err)
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		for offset := 0; offset+unix.SizeofInotifyEvent <= n; {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) == 0 {
				continue
			}
			w.mu.Lock()
			path := w.watchMap[int(event.Wd)]
			w.mu.Unlock()
			if path != "" {
				w.deb.trigger(path)
			}
		}
	}
}

// Close stops Watch and releases the inotify descriptor
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.deb.stop()
		err = unix.Close(w.fd)
	})
	return err
}
