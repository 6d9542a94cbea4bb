package ramp

import (
	"time"

	"lightboard-go/x/mathx"
)

// Step sets the new logical level in [0..top].
type Step func(level uint8)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear drives a synchronous (caller-driven) integer ramp from cur to
// `to` over durationMs in the given number of steps. steps==0 or
// durationMs==0 snaps straight to the target.
func Linear(cur, to, top uint8, durationMs uint32, steps uint8, tick Tick, set Step) {
	if steps == 0 || durationMs == 0 {
		set(mathx.Min(to, top))
		return
	}
	d := int16(to) - int16(cur)
	st := int16(steps)
	acc := int16(0)
	level := int16(cur)
	stepDurMs := durationMs / uint32(steps)
	if stepDurMs == 0 {
		stepDurMs = 1
	}
	stepDur := time.Duration(stepDurMs) * time.Millisecond

	for i := uint8(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += d
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			level = mathx.Clamp(level+inc, 0, int16(top))
			set(uint8(level))
		}
	}
	set(mathx.Min(to, top))
}
