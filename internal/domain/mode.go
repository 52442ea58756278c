// Package domain holds the value types shared across digd:
// performance modes, allocations, telemetry snapshots, and missions.
package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when a mode name does not match any
// of the four performance modes.
var ErrUnknownMode = errors.New("unknown performance mode")

// PerformanceMode selects how aggressively background compute is
// prioritized over the interactive foreground. The daemon switches
// modes on explicit request, or forces Balanced when the GPU
// overheats.
type PerformanceMode string

const (
	ModeGaming    PerformanceMode = "gaming"    // Foreground first, workers squeezed
	ModeBalanced  PerformanceMode = "balanced"  // Default split
	ModeSleep     PerformanceMode = "sleep"     // Machine idle, workers get nearly everything
	ModeAutopilot PerformanceMode = "autopilot" // Worker-heavy, slightly more UI headroom than sleep
)

// Modes lists all performance modes in a stable order.
var Modes = []PerformanceMode{ModeGaming, ModeBalanced, ModeSleep, ModeAutopilot}

// ParseMode converts a mode name into a PerformanceMode.
// Unknown names return ErrUnknownMode.
func ParseMode(name string) (PerformanceMode, error) {
	for _, m := range Modes {
		if string(m) == name {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Valid reports whether m is one of the four performance modes.
func (m PerformanceMode) Valid() bool {
	_, err := ParseMode(string(m))
	return err == nil
}

// Allocation is the CPU/GPU reservation split between the interactive
// foreground ("ui") and the background compute workers. Percentages are
// independent caps in [1,100], not a partition of 100.
type Allocation struct {
	UICPUPercent     int    `json:"ui_cpu_percent"`
	WorkerCPUPercent int    `json:"worker_cpu_percent"`
	UIGPUPercent     int    `json:"ui_gpu_percent"`
	WorkerGPUPercent int    `json:"worker_gpu_percent"`
	Profile          string `json:"profile"`
}
