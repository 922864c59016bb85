// Package debouncetest provides a manually advanced scheduler for debounce tests.
package debouncetest

import (
	"sort"
	"sync"
	"time"

	"github.com/rshade/svccat/internal/debounce"
)

// ManualScheduler fires scheduled functions only when Advance moves its clock past
// their deadline. Functions run on the goroutine calling Advance.
type ManualScheduler struct {
	mu        sync.Mutex
	now       time.Duration
	nextID    int
	tasks     []*manualTask
	scheduled int
}

type manualTask struct {
	s        *ManualScheduler
	id       int
	deadline time.Duration
	fn       func()
	done     bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

var _ debounce.Scheduler = (*ManualScheduler)(nil)

// AfterFunc schedules fn at now+d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) debounce.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.scheduled++
	t := &manualTask{s: s, id: s.nextID, deadline: s.now + d, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Stop cancels the task if it has not fired.
func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Advance moves the clock forward by d and runs every task whose deadline has passed,
// in deadline order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	now := s.now
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.done && t.deadline <= now {
			t.done = true
			due = append(due, t)
		}
	}
	s.compactLocked()
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].deadline < due[j].deadline })
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of scheduled tasks that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Scheduled returns the total number of AfterFunc calls.
func (s *ManualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

func (s *ManualScheduler) compactLocked() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	s.tasks = live
}
