package sched

import (
	"sync"

	"github.com/yourusername/gridsync/internal/logging"
)

// Serial runs posted funcs one at a time in post order. Post from inside a
// running func queues the new func behind it instead of reentering, so every
// func observes a consistent engine state.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	running bool
}

// Post runs fn now if the executor is idle, draining anything queued meanwhile
// on the calling goroutine. Otherwise fn is queued and Post returns at once.
func (s *Serial) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.mu.Unlock()
			return
		}
		next := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		run(next)
	}
}

// Do posts fn and waits for it to finish. It must not be called from inside
// a posted func.
func (s *Serial) Do(fn func()) {
	done := make(chan struct{})
	s.Post(func() {
		defer close(done)
		fn()
	})
	<-done
}

func run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error().Interface("panic", r).Msg("serial task panicked")
		}
	}()
	fn()
}
