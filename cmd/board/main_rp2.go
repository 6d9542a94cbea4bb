//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"

	"machine"

	"lightboard-go/bus"
	"lightboard-go/drivers/strip"
	"lightboard-go/drivers/temt6000"
	"lightboard-go/services/bridge"
	"lightboard-go/services/config"
	"lightboard-go/services/heartbeat"
	"lightboard-go/services/panel"
	"lightboard-go/x/ramp"
)

const (
	deviceID  = "board"
	numPixels = 50

	ledPin   = machine.GP2
	lightPin = machine.GP26 // ADC0
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("[board] starting")

	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceID)

	buf := strip.NewBuffer(numPixels, strip.NewWS2812(ledPin, numPixels))
	buf.SetDither(true)

	// Walk a white pixel down the strip, then ramp the brightness up,
	// so a fresh flash proves the hardware before any state arrives.
	wait := func(d time.Duration) bool { time.Sleep(d); return true }
	buf.SetBrightness(128)
	panel.SelfTest(buf, wait)
	buf.SetBrightness(0)
	ramp.Linear(0, 128, 255, 1000, 50, wait, buf.SetBrightness)

	machine.InitADC()
	sensor := temt6000.New(lightPin)

	b := bus.NewBus(8)

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))
	panel.New(b.NewConnection("panel"), buf, sensor).Start(ctx)
	go bridge.Start(ctx, b.NewConnection("bridge"))

	println("[board] services up")
	select {}
}
