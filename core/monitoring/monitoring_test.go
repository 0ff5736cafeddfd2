package monitoring

import (
	"errors"
	"testing"
	"time"
)

type countMonitor struct {
	captured, panics, flushed int
	lastTags                  map[string]string
}

func (c *countMonitor) CaptureException(error, map[string]string) { c.captured++ }
func (c *countMonitor) CapturePanic(_ any, tags map[string]string) {
	c.panics++
	c.lastTags = tags
}
func (c *countMonitor) Flush(time.Duration) { c.flushed++ }

func TestInitAndForward(t *testing.T) {
	m := &countMonitor{}
	Init(m)
	defer Init(NopMonitor{})

	CaptureException(errors.New("boom"), nil)
	CaptureException(nil, nil)
	Flush(time.Millisecond)
	if m.captured != 1 || m.flushed != 1 {
		t.Fatalf("calls not forwarded: %#v", m)
	}

	Init(nil)
	CaptureException(errors.New("boom"), nil)
	if m.captured != 2 {
		t.Fatalf("nil Init must keep the current monitor")
	}
}

func TestGoReportsPanic(t *testing.T) {
	m := &countMonitor{}
	Init(m)
	defer Init(NopMonitor{})

	err := <-Go("consumer", func() { panic("boom") })
	if err == nil {
		t.Fatal("expected panic error")
	}
	if m.panics != 1 || m.lastTags["component"] != "consumer" {
		t.Fatalf("panic not reported: %#v", m)
	}

	if err, ok := <-Go("consumer", func() {}); ok || err != nil {
		t.Fatalf("expected closed channel, got %v", err)
	}
}
