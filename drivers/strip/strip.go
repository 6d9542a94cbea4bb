// Package strip owns the pixel frame buffer for an addressable LED
// strip. Components write colors into the buffer; Flush applies the
// global brightness with temporal dithering and hands one complete
// frame to the hardware writer. The buffer is sized once and never
// grows.
package strip

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is one pixel in output order.
type RGB struct {
	R, G, B uint8
}

// HSV is a byte-packed hue/saturation/value color, hue 0..255 spanning
// the full circle.
type HSV struct {
	H, S, V uint8
}

// RGB converts via the colorful HSV model.
func (c HSV) RGB() RGB {
	col := colorful.Hsv(float64(c.H)*360.0/255.0, float64(c.S)/255.0, float64(c.V)/255.0)
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}
}

// Writer is the hardware sink for complete frames.
type Writer interface {
	WriteFrame(pix []RGB) error
}

// Buffer is the strip frame buffer. Not safe for concurrent use; the
// panel scheduler is the single owner.
type Buffer struct {
	w          Writer
	pix        []RGB
	out        []RGB
	brightness uint8

	// temporal dithering residuals, one per color component
	dither     bool
	accR, accG []uint16
	accB       []uint16
}

// NewBuffer allocates a buffer of n pixels over the given writer.
func NewBuffer(n int, w Writer) *Buffer {
	return &Buffer{
		w:          w,
		pix:        make([]RGB, n),
		out:        make([]RGB, n),
		brightness: 255,
		dither:     true,
		accR:       make([]uint16, n),
		accG:       make([]uint16, n),
		accB:       make([]uint16, n),
	}
}

func (b *Buffer) Len() int { return len(b.pix) }

// SetBrightness sets the global brightness multiplier (255 = full).
func (b *Buffer) SetBrightness(v uint8) { b.brightness = v }

func (b *Buffer) Brightness() uint8 { return b.brightness }

// SetDither enables or disables temporal dithering.
func (b *Buffer) SetDither(on bool) { b.dither = on }

// SetRGB writes one pixel; out-of-range indexes are ignored.
func (b *Buffer) SetRGB(i int, c RGB) {
	if i < 0 || i >= len(b.pix) {
		return
	}
	b.pix[i] = c
}

// SetHSV converts and writes one pixel.
func (b *Buffer) SetHSV(i int, c HSV) { b.SetRGB(i, c.RGB()) }

// Pixel returns the raw (pre-brightness) pixel value.
func (b *Buffer) Pixel(i int) RGB {
	if i < 0 || i >= len(b.pix) {
		return RGB{}
	}
	return b.pix[i]
}

// Fill paints the whole strip.
func (b *Buffer) Fill(c RGB) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Flush scales the frame by the global brightness and writes it out.
// With dithering on, the fractional part of each scaled component is
// carried over to the next flush so the time-averaged output matches
// the ideal level.
func (b *Buffer) Flush() error {
	for i, p := range b.pix {
		b.out[i] = RGB{
			R: b.scale(p.R, &b.accR[i]),
			G: b.scale(p.G, &b.accG[i]),
			B: b.scale(p.B, &b.accB[i]),
		}
	}
	return b.w.WriteFrame(b.out)
}

func (b *Buffer) scale(v uint8, acc *uint16) uint8 {
	p := uint16(v) * uint16(b.brightness)
	q := p / 255
	if !b.dither {
		return uint8(q)
	}
	*acc += p % 255
	if *acc >= 255 {
		*acc -= 255
		q++
	}
	return uint8(q)
}
