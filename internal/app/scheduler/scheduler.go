// Package scheduler maps a performance mode to a concrete CPU/GPU
// split between the UI band and the worker band. The mapping is a
// pure function of (mode, configured UI floors): same inputs always
// produce the same Allocation.
package scheduler

import "github.com/dig-network/digd/internal/domain"

// Floors are the configured minimum reservations for the interactive
// foreground. Each mode additionally imposes its own minimum; the
// effective UI reservation is the larger of the two.
type Floors struct {
	UICPUPercent int
	UIGPUPercent int
}

// AllocationForMode returns the resource split for a mode. Worker
// percentages are fixed per mode; UI percentages respect the
// configured floors but never drop below the mode's own minimum.
func AllocationForMode(mode domain.PerformanceMode, f Floors) domain.Allocation {
	switch mode {
	case domain.ModeGaming:
		return domain.Allocation{
			UICPUPercent:     max(f.UICPUPercent, 15),
			WorkerCPUPercent: 20,
			UIGPUPercent:     max(f.UIGPUPercent, 20),
			WorkerGPUPercent: 10,
			Profile:          string(domain.ModeGaming),
		}
	case domain.ModeSleep:
		return domain.Allocation{
			UICPUPercent:     max(f.UICPUPercent, 3),
			WorkerCPUPercent: 95,
			UIGPUPercent:     max(f.UIGPUPercent, 2),
			WorkerGPUPercent: 98,
			Profile:          string(domain.ModeSleep),
		}
	case domain.ModeAutopilot:
		return domain.Allocation{
			UICPUPercent:     max(f.UICPUPercent, 5),
			WorkerCPUPercent: 85,
			UIGPUPercent:     max(f.UIGPUPercent, 5),
			WorkerGPUPercent: 90,
			Profile:          string(domain.ModeAutopilot),
		}
	default:
		// Balanced is also the fallback profile the thermal
		// override throttles into.
		return domain.Allocation{
			UICPUPercent:     max(f.UICPUPercent, 5),
			WorkerCPUPercent: 80,
			UIGPUPercent:     max(f.UIGPUPercent, 5),
			WorkerGPUPercent: 85,
			Profile:          string(domain.ModeBalanced),
		}
	}
}
