package ui

import (
	"sync"
	"time"
)

// Debounce returns a trigger that runs fn once wait has passed without
// another trigger. Only the last trigger within wait runs fn.
func Debounce(wait time.Duration, fn func()) func() {
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
