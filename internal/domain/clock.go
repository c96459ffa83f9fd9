package domain

import "github.com/jonboulle/clockwork"

// clock stamps ReadingSet.LoadedAt.
var clock = clockwork.NewRealClock()

// SetClock replaces the load-time source, typically with a fake in tests.
// Nil restores the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}
