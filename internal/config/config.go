// Package config loads and validates the monitor configuration.
// Configuration is immutable after startup: there is no live reload,
// and in particular the moving-average window is fixed for the lifetime
// of the process. Changing any value requires a restart.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sweeney/tank-monitor/internal/gpio"
	"github.com/sweeney/tank-monitor/internal/logic"
	"github.com/sweeney/tank-monitor/internal/sensor"
)

// Config holds all functional parameters of the monitor.
type Config struct {
	// Tank geometry. The water level is derived as
	// tank_height_mm - (distance - sensor_dead_zone_mm), clamped to the
	// tank height.
	TankHeightMm     int `yaml:"tank_height_mm"`
	SensorDeadZoneMm int `yaml:"sensor_dead_zone_mm"`

	// Filter window over valid raw samples. Fixed at startup.
	MovingAverageWindow int `yaml:"moving_average_window"`

	// Hysteresis threshold pairs, in mm of water level. Each severity
	// activates below its on threshold and releases above its off
	// threshold.
	CriticalOnMm  int `yaml:"critical_on_mm"`
	CriticalOffMm int `yaml:"critical_off_mm"`
	BottomOnMm    int `yaml:"bottom_on_mm"`
	BottomOffMm   int `yaml:"bottom_off_mm"`

	// LED blink half-periods: the time the LED spends in each state.
	SlowBlink time.Duration `yaml:"slow_blink"`
	FastBlink time.Duration `yaml:"fast_blink"`

	// Sampling cadence.
	MeasureInterval time.Duration `yaml:"measure_interval"`

	// Output pins (GPIO chip line offsets).
	LEDPin   int `yaml:"led_pin"`
	RelayPin int `yaml:"relay_pin"`

	// Ultrasonic sensor serial port.
	SerialPort string `yaml:"serial_port"`
	SerialBaud int    `yaml:"serial_baud"`

	// RelayCloseAt is the severity at or above which the relay is
	// commanded closed. The relay-to-severity mapping is policy, not a
	// fixed law; the default closes the relay only when the tank is
	// nearly empty.
	RelayCloseAt string `yaml:"relay_close_at"`
}

// Default returns the reference deployment configuration.
func Default() *Config {
	return &Config{
		TankHeightMm:        196,
		SensorDeadZoneMm:    30,
		MovingAverageWindow: 10,
		CriticalOnMm:        150,
		CriticalOffMm:       180,
		BottomOnMm:          50,
		BottomOffMm:         70,
		SlowBlink:           700 * time.Millisecond,
		FastBlink:           200 * time.Millisecond,
		MeasureInterval:     time.Second,
		LEDPin:              gpio.DefaultPinLED,
		RelayPin:            gpio.DefaultPinRelay,
		SerialPort:          "/dev/ttyAMA0",
		SerialBaud:          sensor.DefaultBaudRate,
		RelayCloseAt:        logic.SeverityBottom.String(),
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults. The result is not yet validated;
// callers must call Validate before running.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Validate rejects any configuration with ambiguous thresholds or
// unusable hardware parameters. The daemon must refuse to run on a
// violated invariant rather than operate with ambiguous thresholds.
func (c *Config) Validate() error {
	if c.TankHeightMm <= 0 {
		return fmt.Errorf("tank_height_mm must be positive, got %d", c.TankHeightMm)
	}
	if c.SensorDeadZoneMm < 0 || c.SensorDeadZoneMm >= c.TankHeightMm {
		return fmt.Errorf("sensor_dead_zone_mm must be in [0, tank_height_mm), got %d", c.SensorDeadZoneMm)
	}
	if c.MovingAverageWindow < 1 {
		return fmt.Errorf("moving_average_window must be >= 1, got %d", c.MovingAverageWindow)
	}
	if c.CriticalOffMm <= c.CriticalOnMm {
		return fmt.Errorf("critical_off_mm (%d) must be greater than critical_on_mm (%d)", c.CriticalOffMm, c.CriticalOnMm)
	}
	if c.BottomOffMm <= c.BottomOnMm {
		return fmt.Errorf("bottom_off_mm (%d) must be greater than bottom_on_mm (%d)", c.BottomOffMm, c.BottomOnMm)
	}
	if c.BottomOnMm >= c.CriticalOnMm {
		// BOTTOM is strictly more severe than LOW: its activation
		// threshold must sit below LOW's.
		return fmt.Errorf("bottom_on_mm (%d) must be below critical_on_mm (%d)", c.BottomOnMm, c.CriticalOnMm)
	}
	if c.SlowBlink <= 0 {
		return fmt.Errorf("slow_blink must be positive, got %v", c.SlowBlink)
	}
	if c.FastBlink <= 0 {
		return fmt.Errorf("fast_blink must be positive, got %v", c.FastBlink)
	}
	if c.MeasureInterval <= 0 {
		return fmt.Errorf("measure_interval must be positive, got %v", c.MeasureInterval)
	}
	if c.LEDPin < 0 || c.RelayPin < 0 {
		return fmt.Errorf("pins must be non-negative, got led=%d relay=%d", c.LEDPin, c.RelayPin)
	}
	if c.LEDPin == c.RelayPin {
		return fmt.Errorf("led_pin and relay_pin must differ, both are %d", c.LEDPin)
	}
	if c.SerialPort == "" {
		return fmt.Errorf("serial_port must be set")
	}
	if c.SerialBaud <= 0 {
		return fmt.Errorf("serial_baud must be positive, got %d", c.SerialBaud)
	}
	if _, ok := logic.ParseSeverity(c.RelayCloseAt); !ok {
		return fmt.Errorf("relay_close_at must be one of NORMAL, LOW, BOTTOM, got %q", c.RelayCloseAt)
	}
	return nil
}

// RelaySeverity returns the parsed relay policy. Validate must have
// accepted the configuration first.
func (c *Config) RelaySeverity() logic.Severity {
	s, _ := logic.ParseSeverity(c.RelayCloseAt)
	return s
}
