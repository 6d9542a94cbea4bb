// Package temt6000 reads a TEMT6000 ambient light sensor through an
// ADC channel. The part is a plain phototransistor; all it needs is a
// single analog read, so the driver is the thin seam between the panel's
// brightness controller and the platform ADC.
package temt6000

// Source is implemented by both the hardware device and the host fake.
type Source interface {
	// Read returns the raw sample and the full-scale value it is
	// measured against.
	Read() (raw, fullScale uint16)
}
