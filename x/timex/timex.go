package timex

import "time"

// NowMs returns the current Unix time in milliseconds.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz converts a frame rate in Hz to a nanosecond period.
// A zero rate is coerced to 1 Hz rather than dividing by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return 1_000_000_000 / uint64(freqHz)
}
