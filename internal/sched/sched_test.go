package sched

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualAfterAndEvery(t *testing.T) {
	m := NewManual(epoch)
	var fired []string
	m.After(30*time.Millisecond, func() { fired = append(fired, "after") })
	cancel := m.Every(25*time.Millisecond, func() { fired = append(fired, "tick") })

	m.Advance(60 * time.Millisecond)
	want := []string{"tick", "after", "tick"}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
	if got := m.Now(); !got.Equal(epoch.Add(60 * time.Millisecond)) {
		t.Errorf("Now() = %v, want epoch+60ms", got)
	}

	cancel()
	fired = nil
	m.Advance(time.Second)
	if len(fired) != 0 {
		t.Errorf("cancelled timers fired: %v", fired)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualCallbackCanCancelItself(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var cancel Cancel
	cancel = m.Every(10*time.Millisecond, func() {
		count++
		if count == 3 {
			cancel()
		}
	})
	m.Advance(100 * time.Millisecond)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestManualCallbackCanSchedule(t *testing.T) {
	m := NewManual(epoch)
	var at []time.Duration
	m.After(10*time.Millisecond, func() {
		at = append(at, m.Now().Sub(epoch))
		m.After(10*time.Millisecond, func() { at = append(at, m.Now().Sub(epoch)) })
	})
	m.Advance(50 * time.Millisecond)
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}
	if !reflect.DeepEqual(at, want) {
		t.Errorf("fired at %v, want %v", at, want)
	}
}

func TestSerialNoReentry(t *testing.T) {
	var s Serial
	var order []string
	s.Post(func() {
		order = append(order, "outer-start")
		s.Post(func() { order = append(order, "inner") })
		order = append(order, "outer-end")
	})
	want := []string{"outer-start", "outer-end", "inner"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestSerialRecoversPanics(t *testing.T) {
	var s Serial
	ran := false
	s.Post(func() {
		s.Post(func() { ran = true })
		panic("boom")
	})
	if !ran {
		t.Error("queued func should still run after a panic")
	}
}

func TestSerialConcurrentPosts(t *testing.T) {
	var s Serial
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func() { count++ })
		}()
	}
	wg.Wait()
	if count != 50 {
		t.Errorf("count = %d, want 50", count)
	}
}

func TestRealAfter(t *testing.T) {
	done := make(chan struct{})
	Real{}.After(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("After callback never fired")
	}
}
