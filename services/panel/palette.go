package panel

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"lightboard-go/drivers/strip"
	"lightboard-go/errcode"
	"lightboard-go/types"
)

// Palette maps every possible state id to its display color. Entries
// default to black; it is immutable once the service starts.
type Palette [256]strip.HSV

// DefaultColors mirrors the stock board layout: states 0 and 1 are
// dark, then red, yellow, green, blue, violet.
func DefaultColors() []types.StateColor {
	return []types.StateColor{
		{State: 2, Hex: "#FF0000"},
		{State: 3, Hex: "#FFFF00"},
		{State: 4, Hex: "#00FF00"},
		{State: 5, Hex: "#0000FF"},
		{State: 6, Hex: "#EE82EE"},
	}
}

// NewPalette builds a palette from hex color assignments.
func NewPalette(colors []types.StateColor) (*Palette, error) {
	p := &Palette{}
	for _, sc := range colors {
		col, err := colorful.Hex(sc.Hex)
		if err != nil {
			return nil, &errcode.E{C: errcode.InvalidPayload, Op: "palette", Msg: sc.Hex, Err: err}
		}
		h, s, v := col.Hsv()
		p[sc.State] = strip.HSV{
			H: uint8(h/360.0*255.0 + 0.5),
			S: uint8(s*255.0 + 0.5),
			V: uint8(v*255.0 + 0.5),
		}
	}
	return p, nil
}
