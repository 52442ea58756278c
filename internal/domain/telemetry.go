package domain

import "time"

// TelemetrySnapshot is a point-in-time reading of host load, thermal
// state, and the economics derived from them. Snapshots are immutable:
// each sampling tick builds a fresh one that supersedes the last.
// Floats are rounded (2 decimals, earnings 4) so snapshots compare
// cleanly.
type TelemetrySnapshot struct {
	Timestamp      time.Time       `json:"timestamp"`
	CPULoadPercent float64         `json:"cpu_load_percent"`
	CPUTempC       float64         `json:"cpu_temp_c"`
	GPULoadPercent float64         `json:"gpu_load_percent"`
	GPUTempC       float64         `json:"gpu_temp_c"`
	NetLatencyMS   float64         `json:"net_latency_ms"`
	EarningsPerSec float64         `json:"earnings_per_sec"`
	ImpactScore    float64         `json:"impact_score"`
	Mode           PerformanceMode `json:"mode"`
}
