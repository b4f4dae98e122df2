package card

import (
	"stampcard/internal/card/interfaces"
	"sync"
	"time"
)

// TimerScheduler runs deferred callbacks on time.AfterFunc and can cancel
// every pending one at shutdown.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[*time.Timer]struct{}
	stopped bool
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, pending := s.timers[timer]
		delete(s.timers, timer)
		s.mu.Unlock()
		if pending {
			fn()
		}
	})
	s.timers[timer] = struct{}{}
}

func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for t := range s.timers {
		t.Stop()
	}
	s.timers = make(map[*time.Timer]struct{})
}

func NewScheduler() interfaces.SchedulerInterface {
	return &TimerScheduler{timers: make(map[*time.Timer]struct{})}
}
