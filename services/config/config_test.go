// config/config_test.go
package config

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"lightboard-go/bus"
	"lightboard-go/types"
)

func TestConfig_PublishEmbedded_RetainedPerKey(t *testing.T) {
	// Override lookup for this test.
	oldLookup := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) ([]byte, bool) {
		if device != "board" {
			return nil, false
		}
		return []byte(`{
			"panel": {"channels": 5, "fps": 100},
			"heartbeat": {"interval": 7}
		}`), true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = oldLookup })

	b := bus.NewBus(16)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	ctx := context.WithValue(context.Background(), CtxDeviceKey, "board")
	svc.Start(ctx, conn)

	// Retained messages arrive on subscribe even after the publisher ran.
	sub := conn.Subscribe(bus.Topic{configPrefix, "#"})

	got := map[string]json.RawMessage{}
	deadline := time.Now().Add(600 * time.Millisecond)
	for len(got) < 2 && time.Now().Before(deadline) {
		select {
		case m := <-sub.Channel():
			key, _ := m.Topic.At(1).(string)
			raw, ok := m.Payload.(json.RawMessage)
			if !ok {
				t.Fatalf("payload for %q is %T, want json.RawMessage", key, m.Payload)
			}
			if !m.Retained {
				t.Fatalf("config message for %q not retained", key)
			}
			got[key] = raw
		case <-time.After(20 * time.Millisecond):
		}
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 config sections, got %d", len(got))
	}

	var pc types.PanelConfig
	if err := json.Unmarshal(got["panel"], &pc); err != nil {
		t.Fatalf("panel section: %v", err)
	}
	if pc.Channels != 5 || pc.FPS != 100 {
		t.Fatalf("panel section decoded as %+v", pc)
	}

	var hc types.HeartbeatConfig
	if err := json.Unmarshal(got["heartbeat"], &hc); err != nil {
		t.Fatalf("heartbeat section: %v", err)
	}
	if hc.IntervalS != 7 {
		t.Fatalf("heartbeat interval = %d", hc.IntervalS)
	}
}

func TestConfig_MissingDeviceFails(t *testing.T) {
	b := bus.NewBus(4)
	conn := b.NewConnection("test-config")
	svc := NewConfigService()

	if err := svc.publishConfig(context.Background(), conn); err == nil {
		t.Fatal("expected error without a device ID in context")
	}
}

func TestConfig_EmbeddedBoardParses(t *testing.T) {
	raw, ok := EmbeddedConfigLookup("board")
	if !ok {
		t.Fatal("no embedded config for device 'board'")
	}
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	for _, key := range []string{"panel", "heartbeat", "bridge"} {
		if _, ok := sections[key]; !ok {
			t.Fatalf("embedded config missing %q section", key)
		}
	}
}
