// bridge/bridge.go
package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"lightboard-go/bus"
	"lightboard-go/errcode"
	"lightboard-go/types"
)

// The bridge connects an external byte link (UART on the device, any
// io.ReadWriteCloser on the host) to the bus. The wire protocol is
// newline-delimited text:
//
//	-> "<command>"        a raw panel command ("2=3", "?")
//	<- "ok"               the command was accepted
//	<- "err <code>"       the command was rejected
//	<- "status <s>"       pushed whenever the panel publishes status
//
// which keeps remote controllers as dumb as a serial terminal.

// -----------------------------------------------------------------------------
// Public entry point
// -----------------------------------------------------------------------------

// Start starts the bridge service. It blocks until ctx is cancelled.
// It listens for JSON config on topic {"config","bridge"} and (re)configures
// the link.
func Start(ctx context.Context, conn *bus.Connection) {
	s := &Service{
		conn:       conn,
		stateTopic: bus.Topic{"bridge", "state"},
	}
	s.run(ctx)
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Config is the JSON-encoded configuration expected on "config/bridge".
type Config struct {
	Transport TransportConfig `json:"transport"`
}

type TransportConfig struct {
	// "uart" (device builds) or any name registered via RegisterTransport.
	Type string      `json:"type"`
	UART *UARTConfig `json:"uart,omitempty"`
}

// UARTConfig carries enough information for the TinyGo dialler to open
// the UART; pin numbers are platform-specific.
type UARTConfig struct {
	Baud  int `json:"baud"`
	RxPin int `json:"rx_pin"`
	TxPin int `json:"tx_pin"`
}

func decodeConfig(payload any) (Config, error) {
	var cfg Config
	switch v := payload.(type) {
	case Config:
		return v, nil
	case []byte:
		return cfg, json.Unmarshal(v, &cfg)
	case json.RawMessage:
		return cfg, json.Unmarshal(v, &cfg)
	default:
		return cfg, errcode.InvalidPayload
	}
}

// -----------------------------------------------------------------------------
// Service
// -----------------------------------------------------------------------------

type Service struct {
	conn       *bus.Connection
	stateTopic bus.Topic

	mu     sync.Mutex
	curRun context.CancelFunc
}

// run waits for config and supervises a single link instance.
func (s *Service) run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(bus.Topic{"config", "bridge"})
	defer s.conn.Unsubscribe(cfgSub)

	s.publishState("idle", "awaiting_config")

	for {
		select {
		case <-ctx.Done():
			s.stopCurrent()
			return
		case msg, ok := <-cfgSub.Channel():
			if !ok {
				s.publishState("error", "config_subscription_closed")
				return
			}
			cfg, err := decodeConfig(msg.Payload)
			if err != nil {
				s.publishState("error", "config_decode_failed")
				continue
			}
			s.reconfigure(ctx, cfg)
		}
	}
}

func (s *Service) stopCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.curRun != nil {
		s.curRun()
		s.curRun = nil
	}
}

func (s *Service) reconfigure(parent context.Context, cfg Config) {
	s.mu.Lock()
	if s.curRun != nil {
		s.curRun()
	}
	ctx, cancel := context.WithCancel(parent)
	s.curRun = cancel
	s.mu.Unlock()

	go s.runLink(ctx, cfg)
}

func (s *Service) publishState(level, status string) {
	s.conn.Publish(s.conn.NewMessage(s.stateTopic, map[string]any{
		"level":  level,
		"status": status,
	}, true))
}

// -----------------------------------------------------------------------------
// Link supervision and I/O
// -----------------------------------------------------------------------------

func (s *Service) runLink(ctx context.Context, cfg Config) {
	tr, err := newTransport(cfg.Transport)
	if err != nil {
		s.publishState("error", "transport_init_failed")
		return
	}

	backoff := backoffSeq(250*time.Millisecond, 5*time.Second)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rwc, err := tr.Open(ctx)
		if err != nil {
			s.publishState("degraded", "dial_failed_retrying")
			if !sleep(ctx, backoff()) {
				return
			}
			continue
		}

		s.publishState("up", "link_established")
		if err := s.handleLink(ctx, rwc); err != nil {
			_ = rwc.Close()
			s.publishState("degraded", "link_lost_retrying")
			if !sleep(ctx, backoff()) {
				return
			}
			continue
		}
		// Clean close: restart only on new config.
		_ = rwc.Close()
		return
	}
}

// handleLink owns the active link lifetime: one reader goroutine for
// inbound command lines, status forwarding from the bus, and a shared
// write path.
func (s *Service) handleLink(ctx context.Context, rwc io.ReadWriteCloser) error {
	var wmu sync.Mutex
	writeLine := func(line string) error {
		wmu.Lock()
		defer wmu.Unlock()
		_, err := rwc.Write([]byte(line + "\n"))
		return err
	}

	statusSub := s.conn.Subscribe(bus.Topic{"panel", "status"})
	defer s.conn.Unsubscribe(statusSub)

	errCh := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(rwc)
		for sc.Scan() {
			line := strings.TrimRight(sc.Text(), "\r")
			if line == "" {
				continue
			}
			if err := writeLine(s.dispatch(ctx, line)); err != nil {
				errCh <- err
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		errCh <- err
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err != nil {
				return err
			}
		case msg := <-statusSub.Channel():
			if status, ok := msg.Payload.(string); ok {
				if err := writeLine("status " + status); err != nil {
					return err
				}
			}
		}
	}
}

// dispatch forwards one command line to the panel and renders its reply.
func (s *Service) dispatch(ctx context.Context, line string) string {
	reqCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	reply, err := s.conn.RequestWait(reqCtx,
		s.conn.NewMessage(bus.Topic{"panel", "control", "set"}, line, false))
	if err != nil {
		return "err " + string(errcode.Timeout)
	}
	switch p := reply.Payload.(type) {
	case types.OKReply:
		return "ok"
	case types.ErrorReply:
		return "err " + p.Error
	default:
		return "err " + string(errcode.Error)
	}
}

// -----------------------------------------------------------------------------
// Transport registry
// -----------------------------------------------------------------------------

// Transport is a pluggable link dialler/owner.
type Transport interface {
	Open(ctx context.Context) (io.ReadWriteCloser, error)
	String() string
}

type transportFactory func(TransportConfig) (Transport, error)

var (
	regMu    sync.RWMutex
	registry = map[string]transportFactory{}
)

// RegisterTransport allows external packages to add transports
// (e.g. "stdio", "tcp").
func RegisterTransport(name string, f transportFactory) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = f
}

func newTransport(cfg TransportConfig) (Transport, error) {
	regMu.RLock()
	f, ok := registry[cfg.Type]
	regMu.RUnlock()
	if !ok {
		return nil, errcode.UnknownTransport
	}
	return f(cfg)
}

// IOTransport adapts an already-open link (a pipe, a pty, stdio) into
// a Transport that hands it out once and then reports closed.
type IOTransport struct {
	Name string
	mu   sync.Mutex
	rwc  io.ReadWriteCloser
}

func NewIOTransport(name string, rwc io.ReadWriteCloser) *IOTransport {
	return &IOTransport{Name: name, rwc: rwc}
}

func (t *IOTransport) Open(ctx context.Context) (io.ReadWriteCloser, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rwc == nil {
		return nil, errors.New(string(errcode.TransportClosed))
	}
	rwc := t.rwc
	t.rwc = nil
	return rwc, nil
}

func (t *IOTransport) String() string { return t.Name }

// -----------------------------------------------------------------------------
// helpers
// -----------------------------------------------------------------------------

func backoffSeq(start, cap time.Duration) func() time.Duration {
	cur := start
	return func() time.Duration {
		d := cur
		cur *= 2
		if cur > cap {
			cur = cap
		}
		return d
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
