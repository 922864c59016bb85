// Package debounce delays an action until input has been quiet for a fixed period.
//
// A Debouncer owns at most one pending Task. Every Trigger stops the pending task
// before scheduling a new one, so a burst of triggers closer together than the delay
// runs the action exactly once, after the last trigger. Timers come from a Scheduler
// so tests can drive time by hand (see the debouncetest package).
package debounce
