package utils

import (
	"math/rand"
	"time"
)

// PacePolicy is a named randomized-delay policy injected into the loops
// that talk to external surfaces. The pauses shape request timing against
// anti-automation detection; they are not performance knobs. A zero policy
// never sleeps, which is how tests disable pacing.
type PacePolicy struct {
	Min time.Duration
	Max time.Duration
}

// Pause sleeps for a random duration in [Min, Max].
func (p PacePolicy) Pause() {
	if p.Max <= 0 {
		return
	}
	d := p.Min
	if p.Max > p.Min {
		d += time.Duration(rand.Int63n(int64(p.Max - p.Min)))
	}
	time.Sleep(d)
}
