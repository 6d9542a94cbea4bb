//go:build !(rp2040 || rp2350)

package temt6000

// Fake is a host-side Source with a settable level.
type Fake struct {
	Raw  uint16
	Full uint16
}

// NewFake returns a fake pinned at full brightness.
func NewFake() *Fake {
	return &Fake{Raw: 1023, Full: 1023}
}

func (f *Fake) Set(raw uint16) { f.Raw = raw }

func (f *Fake) Read() (uint16, uint16) {
	full := f.Full
	if full == 0 {
		full = 1023
	}
	return f.Raw, full
}
