package types

// Shared payload types that cross the bus. Kept free of behaviour so both
// MCU and host builds can exchange them without pulling service code in.

// OKReply acknowledges a successful control request.
type OKReply struct {
	OK bool `json:"ok"`
}

// ErrorReply carries a stable errcode string for a rejected request.
type ErrorReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Heartbeat is published retained on {"panel","uptime"}.
type Heartbeat struct {
	UptimeS int64 `json:"uptime_s"`
	TSms    int64 `json:"ts_ms"`
}
