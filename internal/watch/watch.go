// Completion: 100% - Module complete

// Package watch reports changes to source files so they can be lexed again
package watch

import (
	"sync"
	"time"
)

// VerboseMode enables watcher error messages on stderr
var VerboseMode bool

// DefaultDelay is how long a file must stay quiet before a change is reported
const DefaultDelay = 500 * time.Millisecond

// debouncer collapses bursts of change events per path into one callback
type debouncer struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	delay    time.Duration
	onChange func(string)
}

func newDebouncer(delay time.Duration, onChange func(string)) *debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &debouncer{
		timers:   make(map[string]*time.Timer),
		delay:    delay,
		onChange: onChange,
	}
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.timers[path]; exists {
		timer.Stop()
	}
	d.timers[path] = time.AfterFunc(d.delay, func() {
		d.onChange(path)
		d.mu.Lock()
		delete(d.timers, path)
		d.mu.Unlock()
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for path, timer := range d.timers {
		timer.Stop()
		delete(d.timers, path)
	}
}
