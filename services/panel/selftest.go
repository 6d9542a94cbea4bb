package panel

import (
	"time"

	"lightboard-go/drivers/strip"
)

// SelfTest walks a single white pixel down the strip so a fresh build
// shows every LED works before the services take over. tick waits for
// the given duration and reports whether to keep going, the same
// caller-driven contract as ramp.Tick.
func SelfTest(buf *strip.Buffer, tick func(time.Duration) bool) {
	white := strip.RGB{R: 255, G: 255, B: 255}
	for i := 0; i < buf.Len(); i++ {
		buf.Fill(strip.RGB{})
		buf.SetRGB(i, white)
		if err := buf.Flush(); err != nil {
			return
		}
		if !tick(50 * time.Millisecond) {
			return
		}
	}
	buf.Fill(strip.RGB{})
	_ = buf.Flush()
}
