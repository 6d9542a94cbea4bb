package types

// StateColor assigns a display color (hex RGB, e.g. "#FF0000") to one
// state id. State 0 is reserved for "off" and defaults to black.
type StateColor struct {
	State uint8  `json:"state"`
	Hex   string `json:"hex"`
}

// PanelConfig is the JSON-encoded configuration expected on "config/panel".
// All fields are read once at service start; there is no runtime mutation.
type PanelConfig struct {
	Channels int `json:"channels"`

	FPS        int `json:"fps"`
	FadeFrames int `json:"fade_frames,omitempty"` // 0 = derived from FPS

	BrightnessLow  uint8 `json:"brightness_low"`
	BrightnessHigh uint8 `json:"brightness_high"`
	ColdFloor      uint8 `json:"cold_floor"`

	CooldownSeconds int     `json:"cooldown_s"`
	SensorCurve     float64 `json:"sensor_curve"`
	SampleWindow    int     `json:"sample_window,omitempty"`

	// Mapping remaps channel index -> pixel index. Empty = identity.
	Mapping []int `json:"mapping,omitempty"`

	Colors []StateColor `json:"colors,omitempty"`
}

// HeartbeatConfig is the JSON-encoded configuration on "config/heartbeat".
type HeartbeatConfig struct {
	IntervalS int `json:"interval"`
}
