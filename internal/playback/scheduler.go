package playback

import (
	"sort"
	"sync"
	"time"
)

// Timer is a cancellable pending callback. Stop may fail to prevent the
// callback; the controller never depends on it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// TimerScheduler schedules on the runtime timer.
type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a fake clock: callbacks run only from Advance, on the
// caller's goroutine, in due-time order.
type ManualScheduler struct {
	// IgnoreStop makes Stop a no-op so stale callbacks still fire.
	IgnoreStop bool

	mu     sync.Mutex
	now    time.Duration
	nextID int
	timers []*manualTimer
}

type manualTimer struct {
	s       *ManualScheduler
	id      int
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.s.IgnoreStop || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func NewManualScheduler() *ManualScheduler { return &ManualScheduler{} }

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t := &manualTimer{s: s, id: s.nextID, at: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Now is the fake time elapsed since creation.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending counts callbacks that are neither fired nor stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d and runs every callback that
// becomes due, including ones scheduled by earlier callbacks. It returns
// the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		t := s.nextDue(target)
		if t == nil {
			s.now = target
			s.compact()
			s.mu.Unlock()
			return fired
		}
		s.now = t.at
		t.fired = true
		s.mu.Unlock()

		t.f()
		fired++
	}
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

func (s *ManualScheduler) compact() {
	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			live = append(live, t)
		}
	}
	s.timers = live
}
