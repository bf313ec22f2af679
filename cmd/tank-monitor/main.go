// Command tank-monitor measures the water level in a tank with an
// ultrasonic sensor and drives a status LED and a safety relay through
// a dual-hysteresis state machine.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/tank-monitor/internal/actuate"
	"github.com/sweeney/tank-monitor/internal/config"
	"github.com/sweeney/tank-monitor/internal/gpio"
	"github.com/sweeney/tank-monitor/internal/logic"
	"github.com/sweeney/tank-monitor/internal/sensor"
	"github.com/sweeney/tank-monitor/internal/status"
)

func main() {
	configPath := flag.String("config", "/etc/tank-monitor.yaml", "Configuration file (YAML)")
	tick := flag.Duration("tick", 10*time.Millisecond, "Blink tick granularity")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	printLevel := flag.Bool("print-level", false, "Take one measurement, print it, and exit")

	flag.Parse()

	if err := run(*configPath, *tick, *heartbeat, *printLevel); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(configPath string, tick, heartbeat time.Duration, printLevel bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	// Refuse to run with ambiguous thresholds, before touching hardware.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if tick <= 0 || tick >= cfg.MeasureInterval {
		return fmt.Errorf("tick (%v) must be positive and finer than measure_interval (%v)", tick, cfg.MeasureInterval)
	}

	// Initialize sensor
	sampler, err := sensor.OpenA02YY(cfg.SerialPort, cfg.SerialBaud, cfg.SensorDeadZoneMm, cfg.TankHeightMm)
	if err != nil {
		return fmt.Errorf("init sensor: %w", err)
	}
	defer sampler.Close()

	// Print level mode
	if printLevel {
		r, err := sampler.Sample()
		if err != nil {
			return fmt.Errorf("read sensor: %w", err)
		}
		if !r.Valid {
			fmt.Println("no valid reading")
			return nil
		}
		level := logic.LevelFromDistance(r.DistanceMm, cfg.TankHeightMm, cfg.SensorDeadZoneMm)
		fmt.Printf("distance: %d mm, level: %d mm\n", r.DistanceMm, level)
		return nil
	}

	// Initialize GPIO outputs
	outputs, err := gpio.NewRealOutputs(cfg.LEDPin, cfg.RelayPin)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer outputs.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		MeasureIntervalMs: cfg.MeasureInterval.Milliseconds(),
		TickMs:            tick.Milliseconds(),
		HeartbeatMs:       heartbeat.Milliseconds(),
		Window:            cfg.MovingAverageWindow,
		SerialPort:        cfg.SerialPort,
		RelayCloseAt:      cfg.RelayCloseAt,
	})

	log.Printf("startup: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))
	log.Printf("started: interval=%v tick=%v window=%d port=%s relay_close_at=%s",
		cfg.MeasureInterval, tick, cfg.MovingAverageWindow, cfg.SerialPort, cfg.RelayCloseAt)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(sampler, outputs.LED(), outputs.Relay(), tracker, cfg, heartbeat, time.Now, ticker.C, sigCh)
}

// runLoop is the cooperative control loop: coarse-grained sampling
// interleaved with fine-grained blink ticking on a single goroutine.
// The hysteresis latches are confined to this goroutine, so severity is
// never observable half-updated. The loop never blocks on I/O; the
// sampler bounds its own read deadline.
func runLoop(sampler sensor.Sampler, led, relay gpio.Output, tracker *status.Tracker, cfg *config.Config, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	filter := logic.NewMovingAverage(cfg.MovingAverageWindow)
	classifier := logic.NewClassifier(cfg.CriticalOnMm, cfg.CriticalOffMm, cfg.BottomOnMm, cfg.BottomOffMm)
	controller := actuate.New(led, relay, actuate.Config{
		SlowBlink:    cfg.SlowBlink,
		FastBlink:    cfg.FastBlink,
		RelayCloseAt: cfg.RelaySeverity(),
	})

	startTime := now()
	severity := classifier.Current()
	var lastMeasure time.Time // zero: measure on the first tick
	lastHeartbeat := startTime

	// Establish the initial actuation state (LED off, relay open).
	if err := controller.Apply(severity, startTime); err != nil {
		log.Printf("actuation error: %v", err)
	}

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			log.Printf("shutdown: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName))
			return nil

		case <-tick:
			t := now()

			if lastMeasure.IsZero() || t.Sub(lastMeasure) >= cfg.MeasureInterval {
				lastMeasure = t

				r, err := sampler.Sample()
				if err != nil {
					log.Printf("sensor read error: %v", err)
				} else {
					tracker.RecordSample(r.Valid)
					if !r.Valid {
						// Dropout: the filter retains its last value and
						// classification continues on stale-but-valid data.
						log.Printf("no valid reading (raw=%dmm)", r.DistanceMm)
					}
					filter.Update(logic.Sample{DistanceMm: r.DistanceMm, Valid: r.Valid})

					if dist, ok := filter.Value(); ok {
						level := logic.LevelFromDistance(dist, cfg.TankHeightMm, cfg.SensorDeadZoneMm)
						newSeverity := classifier.Classify(level)
						if newSeverity != severity {
							log.Printf("event: %s -> %s (level=%dmm)", severity, newSeverity, level)
							tracker.CountTransition(newSeverity)
							severity = newSeverity
							if err := controller.Apply(newSeverity, t); err != nil {
								log.Printf("actuation error: %v", err)
								// Don't crash on output failure
							}
						}
						tracker.SetLevel(level, newSeverity)
					}
					// Filter empty: skip classification for this cycle
					// rather than feeding a synthetic level.
				}
			}

			// Blink timing runs every tick, far finer than the
			// measurement cadence.
			if err := controller.Tick(t); err != nil {
				log.Printf("led tick error: %v", err)
			}

			if heartbeat > 0 && t.Sub(lastHeartbeat) >= heartbeat {
				lastHeartbeat = t
				log.Printf("heartbeat: %s", status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", ""))
			}
		}
	}
}
