// services/panel/service.go
package panel

import (
	"context"
	"encoding/json"
	"time"

	"lightboard-go/bus"
	"lightboard-go/drivers/strip"
	"lightboard-go/drivers/temt6000"
	"lightboard-go/errcode"
	"lightboard-go/types"
	"lightboard-go/x/mathx"
	"lightboard-go/x/timex"
)

var (
	topicConfig  = bus.Topic{"config", "panel"}
	topicControl = bus.Topic{"panel", "control", "set"}
	topicStatus  = bus.Topic{"panel", "status"}
)

const sensorPeriod = 100 * time.Millisecond

// Service runs the whole panel on a single goroutine: the cooldown
// tick, the ambient sample tick and the animation frame tick each fire
// on their own period, commands are handled in between, and the strip
// buffer is flushed exactly once per pass so temporal dithering stays
// smooth no matter which action ran.
type Service struct {
	conn   *bus.Connection
	buf    *strip.Buffer
	sensor temt6000.Source

	cfg types.PanelConfig
	tab *Table
	eng *Engine
	amb *Ambient
}

func New(conn *bus.Connection, buf *strip.Buffer, sensor temt6000.Source) *Service {
	return &Service{conn: conn, buf: buf, sensor: sensor}
}

// Start launches the service loop in a goroutine.
func (s *Service) Start(ctx context.Context) {
	go s.Run(ctx)
}

// Run blocks until ctx is cancelled. The first retained PanelConfig on
// config/panel arms the scheduler; commands arriving before that are
// rejected with not_ready. Later config messages are ignored — the
// configuration surface is read once at startup.
func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(cfgSub)
	ctrlSub := s.conn.Subscribe(topicControl)
	defer s.conn.Unsubscribe(ctrlSub)

	ready := false
	for !ready {
		select {
		case <-ctx.Done():
			return
		case msg := <-cfgSub.Channel():
			cfg, ok := decodeConfig(msg.Payload)
			if !ok {
				println("[panel] bad config payload, waiting")
				continue
			}
			if err := s.configure(cfg); err != nil {
				println("[panel] config rejected:", err.Error())
				continue
			}
			ready = true
		case msg := <-ctrlSub.Channel():
			s.conn.Reply(msg, types.ErrorReply{Error: string(errcode.NotReady)}, false)
		}
	}
	println("[panel] ready:", s.tab.Len(), "channels at", s.cfg.FPS, "fps")

	cool := time.NewTicker(s.cooldownPeriod())
	defer cool.Stop()
	sample := time.NewTicker(sensorPeriod)
	defer sample.Stop()
	frame := time.NewTicker(time.Duration(timex.PeriodFromHz(uint32(s.cfg.FPS))))
	defer frame.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[panel] stopping")
			return
		case <-cool.C:
			s.tickCool()
		case <-sample.C:
			s.tickSample()
		case <-frame.C:
			s.tickFrame()
		case msg := <-ctrlSub.Channel():
			s.handleControl(msg)
		case msg := <-cfgSub.Channel():
			_ = msg // startup-only surface; runtime reconfig is out of scope
		}
		// One flush per pass, outside the per-action logic.
		if err := s.buf.Flush(); err != nil {
			println("[panel] flush:", err.Error())
		}
	}
}

// configure builds the fixed-capacity state from a validated config.
func (s *Service) configure(cfg types.PanelConfig) error {
	applyDefaults(&cfg)
	colors := cfg.Colors
	if len(colors) == 0 {
		colors = DefaultColors()
	}
	pal, err := NewPalette(colors)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.tab = NewTable(cfg.Channels, cfg.Mapping)
	s.eng = NewEngine(s.tab, pal, s.buf, cfg.FadeFrames)
	s.amb = NewAmbient(cfg.SampleWindow, cfg.SensorCurve, cfg.BrightnessLow, cfg.BrightnessHigh)
	s.buf.SetBrightness(s.amb.Brightness())
	return nil
}

func applyDefaults(cfg *types.PanelConfig) {
	if cfg.Channels <= 0 {
		cfg.Channels = 50
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 50
	}
	if cfg.FadeFrames <= 0 {
		// Each fade half covers 0.7 s at the configured frame rate.
		cfg.FadeFrames = cfg.FPS * 7 / 10
	}
	if cfg.BrightnessHigh == 0 {
		cfg.BrightnessHigh = 128
	}
	if cfg.BrightnessLow == 0 {
		cfg.BrightnessLow = 12
	}
	if cfg.ColdFloor == 0 {
		cfg.ColdFloor = 128
	}
	if cfg.CooldownSeconds <= 0 {
		cfg.CooldownSeconds = 30
	}
	if cfg.SensorCurve <= 0 {
		cfg.SensorCurve = 0.35
	}
	if cfg.SampleWindow <= 0 {
		cfg.SampleWindow = 50
	}
}

// cooldownPeriod spreads the full heat range over the configured
// cooldown time: one decrement per tick from 255 down to the floor.
func (s *Service) cooldownPeriod() time.Duration {
	span := 255 - int(s.cfg.ColdFloor)
	if span < 1 {
		span = 1
	}
	ms := mathx.RoundDiv(uint32(s.cfg.CooldownSeconds)*1000, uint32(span))
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Service) tickCool() {
	s.tab.Cool(s.cfg.ColdFloor)
}

func (s *Service) tickSample() {
	if s.sensor == nil {
		return
	}
	raw, full := s.sensor.Read()
	s.buf.SetBrightness(s.amb.Sample(raw, full))
}

func (s *Service) tickFrame() {
	if s.eng.Advance() > 0 {
		s.publishStatus()
	}
}

// handleControl applies one command payload. Malformed or out-of-range
// commands are rejected with a stable code and mutate nothing.
func (s *Service) handleControl(msg *bus.Message) {
	raw, ok := msg.Payload.(string)
	if !ok {
		s.conn.Reply(msg, types.ErrorReply{Error: string(errcode.InvalidPayload)}, false)
		return
	}
	cmd, err := parseCommand(raw, s.tab.Len())
	if err != nil {
		s.conn.Reply(msg, types.ErrorReply{Error: string(errcode.Of(err))}, false)
		return
	}
	if cmd.query {
		s.publishStatus()
		s.conn.Reply(msg, types.OKReply{OK: true}, false)
		return
	}
	if s.eng.Request(cmd.channel, cmd.state) {
		// A reversal committed the in-flight state.
		s.publishStatus()
	}
	s.conn.Reply(msg, types.OKReply{OK: true}, false)
}

func (s *Service) publishStatus() {
	s.conn.Publish(s.conn.NewMessage(topicStatus, s.tab.Status(), true))
}

// decodeConfig accepts the typed struct (mains, tests) or the raw JSON
// section the config service publishes per key.
func decodeConfig(payload any) (types.PanelConfig, bool) {
	switch v := payload.(type) {
	case types.PanelConfig:
		return v, true
	case []byte:
		var cfg types.PanelConfig
		if err := json.Unmarshal(v, &cfg); err != nil {
			return types.PanelConfig{}, false
		}
		return cfg, true
	case json.RawMessage:
		var cfg types.PanelConfig
		if err := json.Unmarshal(v, &cfg); err != nil {
			return types.PanelConfig{}, false
		}
		return cfg, true
	default:
		return types.PanelConfig{}, false
	}
}
