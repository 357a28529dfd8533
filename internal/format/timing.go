package format

import (
	"sync"
	"time"
)

// Debounce returns a function that delays fn until wait has elapsed since the
// last call. Only the final call in a burst runs.
func Debounce(fn func(), wait time.Duration) func() {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}

// Throttle returns a function that runs fn at most once per limit. Calls made
// while throttled are dropped.
func Throttle(fn func(), limit time.Duration) func() {
	var (
		mu        sync.Mutex
		throttled bool
	)
	return func() {
		mu.Lock()
		if throttled {
			mu.Unlock()
			return
		}
		throttled = true
		mu.Unlock()

		fn()
		time.AfterFunc(limit, func() {
			mu.Lock()
			throttled = false
			mu.Unlock()
		})
	}
}
