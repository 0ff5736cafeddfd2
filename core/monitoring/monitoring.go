// Package monitoring reports unexpected failures to an error tracker. The
// process-wide monitor is a no-op until Init installs one.
package monitoring

import (
	"fmt"
	"sync"
	"time"
)

// Monitor receives internal errors and recovered panics.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	CapturePanic(v any, tags map[string]string)
	Flush(timeout time.Duration)
}

// NopMonitor discards everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) CapturePanic(any, map[string]string)       {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init sets the global monitor implementation. nil keeps the current one.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

func get() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException records the error with optional tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	get().CaptureException(err, tags)
}

// Flush flushes buffered events.
func Flush(d time.Duration) { get().Flush(d) }

// Go runs fn in a new goroutine. A panic in fn is reported with the component
// tag and returned on the channel instead of crashing the process. The
// channel is closed when fn returns.
func Go(component string, fn func()) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		defer func() {
			if v := recover(); v != nil {
				get().CapturePanic(v, map[string]string{"component": component})
				done <- fmt.Errorf("%s panicked: %v", component, v)
			}
		}()
		fn()
	}()
	return done
}
