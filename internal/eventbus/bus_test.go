package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New[string](0)
	ch := bus.Subscribe()
	if n := bus.Publish("hello"); n != 1 {
		t.Fatalf("expected 1 delivery got %d", n)
	}
	if v := <-ch; v != "hello" {
		t.Fatalf("expected hello got %v", v)
	}
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after unsubscribe")
	}
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := New[int](1)
	_ = bus.Subscribe()
	bus.Publish(1)
	if n := bus.Publish(2); n != 0 {
		t.Fatalf("expected drop, delivered to %d", n)
	}
	if bus.Dropped() != 1 {
		t.Fatalf("expected 1 dropped got %d", bus.Dropped())
	}
}

func TestBusClose(t *testing.T) {
	bus := New[int](0)
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
	if n := bus.Publish(1); n != 0 {
		t.Fatalf("publish after close delivered to %d", n)
	}
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("expected subscribe after close to return a closed channel")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New[float64](0)
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestConsume(t *testing.T) {
	bus := New[int](0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu  sync.Mutex
		got []int
	)
	done := make(chan struct{})
	go func() {
		Consume(ctx, bus, func(v int) {
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for bus.Publish(1) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("consumer never subscribed")
		}
		time.Sleep(time.Millisecond)
	}
	bus.Publish(2)
	bus.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume did not return after close")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestConsumeDrainsBufferedOnCancel(t *testing.T) {
	bus := New[int](0)
	ctx, cancel := context.WithCancel(context.Background())

	var (
		mu  sync.Mutex
		got []int
	)
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		Consume(ctx, bus, func(v int) {
			if v == 1 {
				<-release
			}
			mu.Lock()
			got = append(got, v)
			mu.Unlock()
		})
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for bus.Publish(1) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("consumer never subscribed")
		}
		time.Sleep(time.Millisecond)
	}
	bus.Publish(2)
	bus.Publish(3)
	cancel()
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume did not return after cancel")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("buffered events lost: %v", got)
	}
}
