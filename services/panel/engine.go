package panel

import (
	"lightboard-go/drivers/strip"
	"lightboard-go/x/mathx"
)

// Engine animates channel transitions. A transition dips the old
// state's value down to black over fadeFrames frames, flips the
// afterglow to maximum at the crossover, then rises into the new
// state's color over the same number of frames. The current heat level
// scales the displayed value at every stage, fading or not.
type Engine struct {
	tab        *Table
	pal        *Palette
	buf        *strip.Buffer
	fadeFrames int16
}

func NewEngine(tab *Table, pal *Palette, buf *strip.Buffer, fadeFrames int) *Engine {
	// Fade positions are byte-scaled; one byte of frames is plenty
	// (255 frames ≈ 5 s at 50 fps for each half).
	if fadeFrames < 1 {
		fadeFrames = 1
	}
	if fadeFrames > 255 {
		fadeFrames = 255
	}
	return &Engine{
		tab:        tab,
		pal:        pal,
		buf:        buf,
		fadeFrames: int16(fadeFrames),
	}
}

// Request asks channel ch to move to newState.
//
// Out-of-range channels are ignored even though the protocol layer
// validates too. An idle channel already in newState stays untouched.
// During fade-out only the destination is swapped, so an in-flight dip
// is never restarted. During fade-in the pending state is committed
// immediately and the elapsed portion of the rise is replayed as a
// dip toward the new target.
//
// The returned flag reports whether the committed state changed as a
// side effect, i.e. whether a status update is due.
func (e *Engine) Request(ch int, newState uint8) bool {
	if ch < 0 || ch >= e.tab.Len() {
		return false
	}
	c := &e.tab.ch[ch]
	switch c.phase {
	case fadeIdle:
		if c.state == newState {
			return false
		}
		c.next = newState
		c.phase = fadeOut
		c.step = e.fadeFrames
		return false
	case fadeOut:
		// Keep the dip going, only the destination changes.
		c.next = newState
		return false
	default: // fadeIn: direction reversal
		c.state = c.next
		c.next = newState
		if c.step > 0 {
			// Replay the elapsed rise as a symmetric dip.
			c.phase = fadeOut
		} else {
			// Still on the crossover frame, re-enter the rise directly.
			c.phase = fadeIn
		}
		return true
	}
}

// Advance runs one animation frame over all channels, writing each
// displayed color through the mapping into the strip buffer. It
// returns how many channels committed their transition this frame.
func (e *Engine) Advance() int {
	committed := 0
	for j := range e.tab.ch {
		c := &e.tab.ch[j]
		switch c.phase {
		case fadeIdle:
			e.display(j, c.state, 255, c.heat)
		case fadeOut:
			e.display(j, c.state, mathx.Map8(uint8(c.step), uint8(e.fadeFrames), 255), c.heat)
			c.step--
			if c.step == 0 {
				c.phase = fadeIn
			}
		case fadeIn:
			if c.step == 0 {
				// Crossover: fresh change gets full afterglow.
				c.heat = 255
			}
			e.display(j, c.next, mathx.Map8(uint8(c.step), uint8(e.fadeFrames), 255), c.heat)
			c.step++
			if c.step > e.fadeFrames {
				c.state = c.next
				c.phase = fadeIdle
				c.step = 0
				e.display(j, c.state, 255, c.heat)
				committed++
			}
		}
	}
	return committed
}

// display writes one channel's color: the state's palette entry with
// its value scaled by the fade position and then by the heat level.
func (e *Engine) display(ch int, state, fade, heat uint8) {
	c := e.pal[state]
	c.V = mathx.Scale8(c.V, fade)
	c.V = mathx.Scale8(c.V, heat)
	e.buf.SetHSV(e.tab.Pixel(ch), c)
}
