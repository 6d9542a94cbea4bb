package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Populate embeddedConfigs at build time (e.g. via code generation) or
// manually during development.
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw JSON bytes for that device
// -----------------------------------------------------------------------------

const cfgBoard = `{
  "panel": {
    "channels": 50,
    "fps": 50,
    "brightness_low": 12,
    "brightness_high": 128,
    "cold_floor": 128,
    "cooldown_s": 30,
    "sensor_curve": 0.35,
    "sample_window": 50,
    "colors": [
      {"state": 2, "hex": "#FF0000"},
      {"state": 3, "hex": "#FFFF00"},
      {"state": 4, "hex": "#00FF00"},
      {"state": 5, "hex": "#0000FF"},
      {"state": 6, "hex": "#EE82EE"}
    ]
  },
  "heartbeat": {
    "interval": 2
  },
  "bridge": {
    "transport": {
      "type": "uart",
      "uart": {
        "baud": 115200,
        "rx_pin": 1,
        "tx_pin": 0
      }
    }
  }
}`

var embeddedConfigs = map[string][]byte{
	"board": []byte(cfgBoard),
}
