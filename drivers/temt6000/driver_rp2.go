//go:build rp2040 || rp2350

package temt6000

import "machine"

// Device samples the sensor on one ADC pin.
type Device struct {
	adc machine.ADC
}

// New configures the ADC channel. machine.InitADC must have been called.
func New(pin machine.Pin) *Device {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	return &Device{adc: adc}
}

func (d *Device) Read() (uint16, uint16) {
	return d.adc.Get(), 0xFFFF
}
