//go:build rp2040 || rp2350

package strip

import (
	"image/color"

	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// ws2812Writer drives a WS2812B chain on a single GPIO.
type ws2812Writer struct {
	dev     ws2812.Device
	scratch []color.RGBA
}

// NewWS2812 configures pin as output and returns a frame writer for a
// chain of n pixels.
func NewWS2812(pin machine.Pin, n int) Writer {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ws2812Writer{
		dev:     ws2812.NewWS2812(pin),
		scratch: make([]color.RGBA, n),
	}
}

func (w *ws2812Writer) WriteFrame(pix []RGB) error {
	n := len(pix)
	if n > len(w.scratch) {
		n = len(w.scratch)
	}
	for i := 0; i < n; i++ {
		w.scratch[i] = color.RGBA{R: pix[i].R, G: pix[i].G, B: pix[i].B, A: 255}
	}
	return w.dev.WriteColors(w.scratch[:n])
}
