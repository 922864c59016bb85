package debounce

import "time"

// Task is a handle to a scheduled function.
type Task interface {
	// Stop cancels the task. It returns false if the task already ran or was stopped.
	Stop() bool
}

// Scheduler runs functions after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func(d time.Duration, fn func()) Task

// AfterFunc calls f(d, fn).
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Task {
	return f(d, fn)
}

// RealScheduler schedules with time.AfterFunc.
func RealScheduler() Scheduler {
	return SchedulerFunc(func(d time.Duration, fn func()) Task {
		return time.AfterFunc(d, fn)
	})
}
