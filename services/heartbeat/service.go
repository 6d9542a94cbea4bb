package heartbeat

import (
	"context"
	"encoding/json"
	"time"

	"lightboard-go/bus"
	"lightboard-go/types"
	"lightboard-go/x/timex"
)

var (
	topicConfig = bus.Topic{"config", "heartbeat"}
	topicUptime = bus.Topic{"panel", "uptime"}
)

type Service struct{}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfig)
	defer conn.Unsubscribe(cfgSub)

	start := time.Now()
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	// loop until context is cancelled, respond to tick and config changes
	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case <-tick.C:
			conn.Publish(conn.NewMessage(topicUptime, types.Heartbeat{
				UptimeS: int64(time.Since(start) / time.Second),
				TSms:    timex.NowMs(),
			}, true))
		case msg := <-cfgSub.Channel():
			cfg, ok := decodeConfig(msg.Payload)
			if !ok || cfg.IntervalS <= 0 {
				continue
			}
			tick.Reset(time.Duration(cfg.IntervalS) * time.Second)
			println("[heartbeat] interval set to", cfg.IntervalS, "seconds")
		}
	}
}

func decodeConfig(payload any) (types.HeartbeatConfig, bool) {
	switch v := payload.(type) {
	case types.HeartbeatConfig:
		return v, true
	case []byte:
		var cfg types.HeartbeatConfig
		if err := json.Unmarshal(v, &cfg); err != nil {
			return types.HeartbeatConfig{}, false
		}
		return cfg, true
	case json.RawMessage:
		var cfg types.HeartbeatConfig
		if err := json.Unmarshal(v, &cfg); err != nil {
			return types.HeartbeatConfig{}, false
		}
		return cfg, true
	default:
		return types.HeartbeatConfig{}, false
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
