//go:build !(rp2040 || rp2350)

// Command sim runs the panel stack on a host machine: the strip renders
// as a row of 24-bit colored blocks in the terminal, the light sensor is
// a fake you steer with -light, and commands are read from stdin using
// the same "n=C" / "?" syntax the serial bridge speaks.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"lightboard-go/bus"
	"lightboard-go/drivers/strip"
	"lightboard-go/drivers/temt6000"
	"lightboard-go/services/heartbeat"
	"lightboard-go/services/panel"
	"lightboard-go/types"
)

func main() {
	channels := flag.Int("channels", 10, "number of channels")
	fps := flag.Int("fps", 50, "animation frame rate")
	light := flag.Float64("light", 1.0, "ambient light level 0..1")
	flag.Parse()

	b := bus.NewBus(8)

	mem := strip.NewMemWriter(*channels)
	mem.OnFrame = render
	buf := strip.NewBuffer(*channels, mem)
	buf.SetDither(false) // pointless on a terminal

	sensor := temt6000.NewFake()
	sensor.Set(uint16(mathClamp(*light) * 1023))

	ctx := context.Background()
	panel.New(b.NewConnection("panel"), buf, sensor).Start(ctx)
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))

	conn := b.NewConnection("sim")
	conn.Publish(conn.NewMessage(bus.T("config", "panel"),
		types.PanelConfig{Channels: *channels, FPS: *fps}, true))
	conn.Publish(conn.NewMessage(bus.T("config", "heartbeat"),
		types.HeartbeatConfig{IntervalS: 10}, true))

	statusSub := conn.Subscribe(bus.T("panel", "status"))
	go func() {
		for msg := range statusSub.Channel() {
			if s, ok := msg.Payload.(string); ok {
				fmt.Printf("\r\033[Kstatus %s\n", s)
			}
		}
	}()

	fmt.Println("commands: n=C sets channel n to state C, ? prints status, ctrl-d quits")
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		if line == "" {
			continue
		}
		rctx, cancel := context.WithTimeout(ctx, time.Second)
		reply, err := conn.RequestWait(rctx, conn.NewMessage(bus.T("panel", "control", "set"), line, false))
		cancel()
		if err != nil {
			fmt.Printf("\r\033[Kerr %v\n", err)
			continue
		}
		switch r := reply.Payload.(type) {
		case types.OKReply:
			fmt.Print("\r\033[Kok\n")
		case types.ErrorReply:
			fmt.Printf("\r\033[Kerr %s\n", r.Error)
		default:
			fmt.Printf("\r\033[K%v\n", reply.Payload)
		}
	}
	fmt.Println()
}

// render repaints the strip on the current terminal line.
func render(pix []strip.RGB) {
	out := make([]byte, 0, 24*len(pix)+16)
	out = append(out, "\r\033[K"...)
	for _, p := range pix {
		out = append(out, fmt.Sprintf("\033[48;2;%d;%d;%dm ", p.R, p.G, p.B)...)
	}
	out = append(out, "\033[0m"...)
	os.Stdout.Write(out)
}

func mathClamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
