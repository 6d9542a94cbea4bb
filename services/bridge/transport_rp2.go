//go:build rp2040 || rp2350

package bridge

import (
	"context"
	"io"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"lightboard-go/errcode"
)

func init() { RegisterTransport("uart", newUARTTransport) }

type uartTransport struct {
	cfg *UARTConfig
}

func newUARTTransport(cfg TransportConfig) (Transport, error) {
	if cfg.UART == nil {
		return nil, errcode.InvalidPayload
	}
	return &uartTransport{cfg: cfg.UART}, nil
}

func (t *uartTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	hw := uartx.UART0
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: uint32(t.cfg.Baud),
		TX:       machine.Pin(t.cfg.TxPin),
		RX:       machine.Pin(t.cfg.RxPin),
	}); err != nil {
		return nil, err
	}
	return &uartLink{u: hw, ctx: ctx}, nil
}

func (t *uartTransport) String() string { return "uart" }

// uartLink adapts uartx to the blocking io.ReadWriteCloser the framer
// expects.
type uartLink struct {
	u   *uartx.UART
	ctx context.Context
}

func (l *uartLink) Read(b []byte) (int, error)  { return l.u.RecvSomeContext(l.ctx, b) }
func (l *uartLink) Write(b []byte) (int, error) { return l.u.Write(b) }
func (l *uartLink) Close() error                { return nil }
