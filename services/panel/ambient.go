package panel

import (
	"math"

	"lightboard-go/x/mathx"
	"lightboard-go/x/runavg"
)

// Ambient smooths ambient light readings into the global brightness.
// Raw samples are normalized, bent through a power curve (exponents
// below 1 expand the low-light range, matching how the eye perceives
// brightness), averaged over a bounded window and mapped linearly onto
// the configured brightness bounds.
type Ambient struct {
	avg   *runavg.Avg
	curve float64
	low   uint8
	high  uint8
}

func NewAmbient(window int, curve float64, low, high uint8) *Ambient {
	if window < 1 {
		window = 1
	}
	if curve <= 0 {
		curve = 1
	}
	a := &Ambient{
		avg:   runavg.New(window),
		curve: curve,
		low:   low,
		high:  high,
	}
	// Seed with one full-scale sample so the board boots bright.
	a.avg.Add(1)
	return a
}

// Sample folds one raw reading into the window and returns the
// brightness to apply globally.
func (a *Ambient) Sample(raw, fullScale uint16) uint8 {
	if fullScale == 0 {
		fullScale = 1
	}
	if raw > fullScale {
		raw = fullScale
	}
	adjusted := math.Pow(float64(raw)/float64(fullScale), a.curve)
	a.avg.Add(adjusted)
	return a.Brightness()
}

// Brightness maps the current window average onto [low, high].
func (a *Ambient) Brightness() uint8 {
	level := uint16(a.avg.Mean() * 255)
	return uint8(mathx.MapU16(level, 0, 255, uint16(a.low), uint16(a.high)))
}
