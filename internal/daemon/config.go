// Package daemon manages the digd lifecycle and configuration.
package daemon

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration. Values come from defaults,
// then $DIGD_HOME/config.toml, then DIG_* environment overrides, and
// are read-only once the daemon starts.
type Config struct {
	Daemon    DaemonConfig    `toml:"daemon"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// DaemonConfig controls the HTTP API server.
type DaemonConfig struct {
	Addr string `toml:"addr"`
}

// SchedulerConfig controls the control loop and planner.
type SchedulerConfig struct {
	PollIntervalMS       int     `toml:"poll_interval_ms"`
	ThermalLimitC        float64 `toml:"thermal_limit_c"`
	UIReservedCPUPercent int     `toml:"ui_reserved_cpu_percent"`
	UIReservedGPUPercent int     `toml:"ui_reserved_gpu_percent"`
}

// TelemetryConfig controls observability surfaces.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Daemon: DaemonConfig{
			Addr: "127.0.0.1:7788",
		},
		Scheduler: SchedulerConfig{
			PollIntervalMS:       1000,
			ThermalLimitC:        85,
			UIReservedCPUPercent: 5,
			UIReservedGPUPercent: 5,
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads config from $DIGD_HOME/config.toml (defaults when
// absent), then applies DIG_* environment overrides. An invalid
// override is an error at startup, not a silent fallback.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(digdHome(), "config.toml")

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays the environment variables the original daemon
// understood onto cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DIG_DAEMON_ADDR"); v != "" {
		if _, _, err := net.SplitHostPort(v); err != nil {
			return fmt.Errorf("invalid DIG_DAEMON_ADDR %q: %w", v, err)
		}
		cfg.Daemon.Addr = v
	}
	if v := os.Getenv("DIG_POLL_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return fmt.Errorf("invalid DIG_POLL_INTERVAL_MS %q", v)
		}
		cfg.Scheduler.PollIntervalMS = ms
	}
	if v := os.Getenv("DIG_THERMAL_LIMIT_C"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid DIG_THERMAL_LIMIT_C %q", v)
		}
		cfg.Scheduler.ThermalLimitC = limit
	}
	if v := os.Getenv("DIG_UI_RESERVED_CPU_PERCENT"); v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil || pct < 1 || pct > 100 {
			return fmt.Errorf("invalid DIG_UI_RESERVED_CPU_PERCENT %q", v)
		}
		cfg.Scheduler.UIReservedCPUPercent = pct
	}
	if v := os.Getenv("DIG_UI_RESERVED_GPU_PERCENT"); v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil || pct < 1 || pct > 100 {
			return fmt.Errorf("invalid DIG_UI_RESERVED_GPU_PERCENT %q", v)
		}
		cfg.Scheduler.UIReservedGPUPercent = pct
	}
	return nil
}

// SaveConfig writes the config to $DIGD_HOME/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(digdHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// digdHome returns the digd data directory.
func digdHome() string {
	if env := os.Getenv("DIGD_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".digd")
}
