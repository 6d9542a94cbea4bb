// bridge/bridge_test.go
package bridge

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"lightboard-go/bus"
	"lightboard-go/errcode"
	"lightboard-go/types"
)

// fakePanel answers panel control requests the way the real service
// does: "?" and "n=c" get OK, everything else an error code, and every
// accepted "?" triggers a status publication.
func fakePanel(t *testing.T, b *bus.Bus, status string) {
	t.Helper()
	conn := b.NewConnection("fake-panel")
	sub := conn.Subscribe(bus.Topic{"panel", "control", "set"})
	go func() {
		for msg := range sub.Channel() {
			raw, _ := msg.Payload.(string)
			if raw == "?" {
				conn.Reply(msg, types.OKReply{OK: true}, false)
				conn.Publish(conn.NewMessage(bus.Topic{"panel", "status"}, status, true))
				continue
			}
			if raw == "2=3" {
				conn.Reply(msg, types.OKReply{OK: true}, false)
				continue
			}
			conn.Reply(msg, types.ErrorReply{Error: string(errcode.InvalidCommand)}, false)
		}
	}()
}

func startBridge(t *testing.T, b *bus.Bus) net.Conn {
	t.Helper()
	local, remote := net.Pipe()
	RegisterTransport("testpipe", func(TransportConfig) (Transport, error) {
		return NewIOTransport("testpipe", remote), nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(func() { local.Close() })

	conn := b.NewConnection("bridge")
	go Start(ctx, conn)

	cfgConn := b.NewConnection("cfg")
	cfgConn.Publish(cfgConn.NewMessage(bus.Topic{"config", "bridge"},
		Config{Transport: TransportConfig{Type: "testpipe"}}, true))

	return local
}

func readLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	type res struct {
		line string
		err  error
	}
	ch := make(chan res, 1)
	go func() {
		line, err := r.ReadString('\n')
		ch <- res{line, err}
	}()
	select {
	case got := <-ch:
		if got.err != nil {
			t.Fatalf("read: %v", got.err)
		}
		return got.line[:len(got.line)-1]
	case <-time.After(2 * time.Second):
		t.Fatal("timeout reading line")
		return ""
	}
}

func TestBridgeRoutesCommandsAndStatus(t *testing.T) {
	b := bus.NewBus(16)
	fakePanel(t, b, "00300")
	link := startBridge(t, b)
	rd := bufio.NewReader(link)

	if _, err := link.Write([]byte("2=3\n")); err != nil {
		t.Fatal(err)
	}
	if got := readLine(t, rd); got != "ok" {
		t.Fatalf("reply = %q, want ok", got)
	}

	if _, err := link.Write([]byte("?\n")); err != nil {
		t.Fatal(err)
	}
	first, second := readLine(t, rd), readLine(t, rd)
	// Reply and pushed status can interleave either way.
	if first != "ok" && second != "ok" {
		t.Fatalf("no ok in %q/%q", first, second)
	}
	if first != "status 00300" && second != "status 00300" {
		t.Fatalf("no status in %q/%q", first, second)
	}
}

func TestBridgeReportsRejections(t *testing.T) {
	b := bus.NewBus(16)
	fakePanel(t, b, "00000")
	link := startBridge(t, b)
	rd := bufio.NewReader(link)

	if _, err := link.Write([]byte("bogus\n")); err != nil {
		t.Fatal(err)
	}
	if got := readLine(t, rd); got != "err "+string(errcode.InvalidCommand) {
		t.Fatalf("reply = %q", got)
	}
}

func TestDecodeConfigVariants(t *testing.T) {
	cfg, err := decodeConfig([]byte(`{"transport":{"type":"uart","uart":{"baud":115200,"rx_pin":1,"tx_pin":0}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Transport.Type != "uart" || cfg.Transport.UART == nil || cfg.Transport.UART.Baud != 115200 {
		t.Fatalf("decoded %+v", cfg)
	}
	if _, err := decodeConfig(42); err == nil {
		t.Fatal("expected error for non-config payload")
	}
}

func TestUnknownTransportFails(t *testing.T) {
	if _, err := newTransport(TransportConfig{Type: "nope"}); errcode.Of(err) != errcode.UnknownTransport {
		t.Fatalf("err = %v", err)
	}
}
