package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/tank-monitor/internal/logic"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tank height", func(c *Config) { c.TankHeightMm = 0 }},
		{"negative dead zone", func(c *Config) { c.SensorDeadZoneMm = -1 }},
		{"dead zone at tank height", func(c *Config) { c.SensorDeadZoneMm = c.TankHeightMm }},
		{"zero window", func(c *Config) { c.MovingAverageWindow = 0 }},
		{"critical off equals on", func(c *Config) { c.CriticalOffMm = c.CriticalOnMm }},
		{"critical off below on", func(c *Config) { c.CriticalOffMm = c.CriticalOnMm - 10 }},
		{"bottom off equals on", func(c *Config) { c.BottomOffMm = c.BottomOnMm }},
		{"bottom on above critical on", func(c *Config) { c.BottomOnMm = c.CriticalOnMm + 10; c.BottomOffMm = c.BottomOnMm + 10 }},
		{"bottom on equals critical on", func(c *Config) { c.BottomOnMm = c.CriticalOnMm; c.BottomOffMm = c.BottomOnMm + 30 }},
		{"zero slow blink", func(c *Config) { c.SlowBlink = 0 }},
		{"zero fast blink", func(c *Config) { c.FastBlink = 0 }},
		{"zero measure interval", func(c *Config) { c.MeasureInterval = 0 }},
		{"negative pin", func(c *Config) { c.LEDPin = -1 }},
		{"same pins", func(c *Config) { c.RelayPin = c.LEDPin }},
		{"empty serial port", func(c *Config) { c.SerialPort = "" }},
		{"zero baud", func(c *Config) { c.SerialBaud = 0 }},
		{"bad relay policy", func(c *Config) { c.RelayCloseAt = "EMPTY" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	data := `
tank_height_mm: 500
critical_on_mm: 200
critical_off_mm: 250
slow_blink: 500ms
measure_interval: 2s
relay_close_at: LOW
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500, cfg.TankHeightMm)
	assert.Equal(t, 200, cfg.CriticalOnMm)
	assert.Equal(t, 250, cfg.CriticalOffMm)
	assert.Equal(t, 500*time.Millisecond, cfg.SlowBlink)
	assert.Equal(t, 2*time.Second, cfg.MeasureInterval)
	assert.Equal(t, logic.SeverityLow, cfg.RelaySeverity())

	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.SensorDeadZoneMm)
	assert.Equal(t, 10, cfg.MovingAverageWindow)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tank_height_mm: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestRelaySeverityDefault(t *testing.T) {
	assert.Equal(t, logic.SeverityBottom, Default().RelaySeverity())
}
