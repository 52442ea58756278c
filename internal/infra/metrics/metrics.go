// Package metrics provides Prometheus metrics for digd: telemetry
// gauges published every control-loop tick, plus counters for the
// thermal override and enforcement failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dig-network/digd/internal/domain"
)

// ─── Telemetry ──────────────────────────────────────────────────────────────

// CPULoad tracks CPU utilization percentage.
var CPULoad = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "cpu_load_percent",
	Help:      "Current CPU utilization percentage.",
})

// CPUTemperature tracks CPU temperature in celsius.
var CPUTemperature = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "cpu_temperature_celsius",
	Help:      "Current CPU temperature in Celsius.",
})

// GPULoad tracks GPU utilization percentage.
var GPULoad = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "gpu_load_percent",
	Help:      "Current GPU utilization percentage.",
})

// GPUTemperature tracks GPU temperature in celsius.
var GPUTemperature = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "gpu_temperature_celsius",
	Help:      "Current GPU temperature in Celsius.",
})

// NetLatency tracks estimated network latency in milliseconds.
var NetLatency = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "net_latency_ms",
	Help:      "Estimated network latency in milliseconds.",
})

// EarningsRate tracks estimated earnings per second.
var EarningsRate = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "earnings_per_second",
	Help:      "Estimated DIG earnings per second.",
})

// ImpactScore tracks the derived impact score.
var ImpactScore = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "impact_score",
	Help:      "Derived impact score for the latest sample.",
})

// ─── Scheduler ──────────────────────────────────────────────────────────────

// Mode tracks the active performance mode
// (0=gaming, 1=balanced, 2=sleep, 3=autopilot).
var Mode = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "performance_mode",
	Help:      "Active performance mode (0=gaming, 1=balanced, 2=sleep, 3=autopilot).",
})

// SessionScore tracks the accumulated session score.
var SessionScore = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "session_score",
	Help:      "Accumulated session score since daemon start.",
})

// ThermalThrottles counts thermal-override activations.
var ThermalThrottles = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "digd",
	Name:      "thermal_throttles_total",
	Help:      "Total thermal-override activations.",
})

// EnforcementFailures counts failed cgroup applies.
var EnforcementFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "digd",
	Name:      "enforcement_failures_total",
	Help:      "Total failed resource-controller applies.",
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "digd",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})

// SetMode publishes the mode gauge using a stable numeric code.
func SetMode(mode domain.PerformanceMode) {
	Mode.Set(float64(modeCode(mode)))
}

func modeCode(mode domain.PerformanceMode) int {
	switch mode {
	case domain.ModeGaming:
		return 0
	case domain.ModeBalanced:
		return 1
	case domain.ModeSleep:
		return 2
	case domain.ModeAutopilot:
		return 3
	default:
		return -1
	}
}
