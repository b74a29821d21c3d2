package watcher

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// debouncer collects change events and hands the distinct paths to the
// handler once no new event arrived for delay.
type debouncer struct {
	delay    time.Duration
	events   map[string]FileChangeEvent
	timer    *time.Timer
	mutex    sync.Mutex
	stopped  bool
	stopChan chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:    delay,
		events:   make(map[string]FileChangeEvent),
		stopChan: make(chan struct{}),
	}
}

func (d *debouncer) add(event FileChangeEvent, handler FileChangeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	d.events[event.Path] = event
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.flush(handler)
	})
}

func (d *debouncer) flush(handler FileChangeHandler) {
	d.mutex.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mutex.Unlock()
		return
	}
	changedFiles := make([]string, 0, len(d.events))
	for path := range d.events {
		changedFiles = append(changedFiles, path)
	}
	d.events = make(map[string]FileChangeEvent)
	d.mutex.Unlock()

	sort.Strings(changedFiles)
	if err := handler(changedFiles); err != nil {
		log.Error().Err(err).Str("sys", "watcher").Msg("Change handler failed")
	}
}

func (d *debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.stopChan)
}
