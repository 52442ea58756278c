// Package governor runs the adaptive resource-allocation control
// loop. On a fixed cadence it samples telemetry, applies the
// thermal-safety rule, and commits the result to the shared runtime
// store; concurrently it serves explicit mode-change requests against
// the same store.
package governor

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dig-network/digd/internal/app/scheduler"
	"github.com/dig-network/digd/internal/domain"
	"github.com/dig-network/digd/internal/infra/cgroups"
	"github.com/dig-network/digd/internal/infra/metrics"
)

// Config controls governor behavior. All values are fixed at startup.
type Config struct {
	PollInterval         time.Duration // Cadence of the control loop (default: 1s)
	ThermalLimitC        float64       // GPU temp (C) that forces Balanced (default: 85)
	UIReservedCPUPercent int           // Configured UI CPU floor
	UIReservedGPUPercent int           // Configured UI GPU floor
}

// DefaultConfig returns the stock control-loop settings.
func DefaultConfig() Config {
	return Config{
		PollInterval:         time.Second,
		ThermalLimitC:        85,
		UIReservedCPUPercent: 5,
		UIReservedGPUPercent: 5,
	}
}

// Sampler produces telemetry snapshots. It never fails.
type Sampler interface {
	Collect(mode domain.PerformanceMode) domain.TelemetrySnapshot
}

// Governor owns the control loop and the mode-change handler. Both
// mutate the shared store; the store's locking keeps them consistent.
type Governor struct {
	cfg      Config
	store    *Store
	sampler  Sampler
	enforcer cgroups.Enforcer
	log      *slog.Logger
}

// New creates a governor around an existing store.
func New(cfg Config, store *Store, sampler Sampler, enforcer cgroups.Enforcer, log *slog.Logger) *Governor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &Governor{
		cfg:      cfg,
		store:    store,
		sampler:  sampler,
		enforcer: enforcer,
		log:      log,
	}
}

// Store returns the shared runtime store.
func (g *Governor) Store() *Store { return g.store }

// Run drives the control loop until ctx is cancelled. Call in a
// goroutine. A fault in one tick never stops the loop; the next tick
// runs at the normal cadence.
func (g *Governor) Run(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.PollInterval)
	defer ticker.Stop()

	g.safeTick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.safeTick()
		}
	}
}

func (g *Governor) safeTick() {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("control loop tick panicked", "panic", r)
		}
	}()
	g.tick()
}

// tick is one pass of the control loop: sample, evaluate the thermal
// rule, commit atomically, accrue score.
func (g *Governor) tick() {
	mode := g.store.Mode()
	snap := g.sampler.Collect(mode)

	// Gaming is exempt from the thermal override, even above the limit.
	// TODO: revisit the exemption — sustained overheating while gaming
	// has no backstop today.
	throttled := snap.GPUTempC >= g.cfg.ThermalLimitC && mode != domain.ModeGaming

	var alloc domain.Allocation
	if throttled {
		alloc = scheduler.AllocationForMode(domain.ModeBalanced, g.floors())
		if err := g.enforcer.Apply(alloc); err != nil {
			metrics.EnforcementFailures.Inc()
			g.log.Warn("thermal cgroup apply failed", "error", err)
		}
		metrics.ThermalThrottles.Inc()
		g.log.Warn("thermal throttle engaged",
			"gpu_temp_c", snap.GPUTempC,
			"limit_c", g.cfg.ThermalLimitC,
			"mode", mode)
	}

	g.store.Update(func(st *State) {
		st.Telemetry = snap
		if throttled {
			st.Mode = domain.ModeBalanced
			st.Allocation = alloc
		}
		st.SessionScore = saturatingAdd(st.SessionScore, scoreDelta(snap.ImpactScore))
	})

	g.publish(g.store.Snapshot())
}

// SetMode handles an explicit mode-change request: plan, enforce,
// commit. Enforcement failure is logged, never surfaced; an unknown
// mode is rejected before any state changes. Returns the allocation
// that was committed (a concurrent thermal tick may supersede it — the
// last writer wins).
func (g *Governor) SetMode(mode domain.PerformanceMode) (domain.Allocation, error) {
	if !mode.Valid() {
		return domain.Allocation{}, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}

	alloc := scheduler.AllocationForMode(mode, g.floors())
	if err := g.enforcer.Apply(alloc); err != nil {
		metrics.EnforcementFailures.Inc()
		g.log.Warn("cgroup allocation failed", "mode", mode, "error", err)
	}

	g.store.Update(func(st *State) {
		st.Mode = mode
		st.Allocation = alloc
	})
	metrics.SetMode(mode)

	return alloc, nil
}

func (g *Governor) floors() scheduler.Floors {
	return scheduler.Floors{
		UICPUPercent: g.cfg.UIReservedCPUPercent,
		UIGPUPercent: g.cfg.UIReservedGPUPercent,
	}
}

// publish pushes the committed state into the Prometheus gauges.
func (g *Governor) publish(st State) {
	metrics.CPULoad.Set(st.Telemetry.CPULoadPercent)
	metrics.CPUTemperature.Set(st.Telemetry.CPUTempC)
	metrics.GPULoad.Set(st.Telemetry.GPULoadPercent)
	metrics.GPUTemperature.Set(st.Telemetry.GPUTempC)
	metrics.NetLatency.Set(st.Telemetry.NetLatencyMS)
	metrics.EarningsRate.Set(st.Telemetry.EarningsPerSec)
	metrics.ImpactScore.Set(st.Telemetry.ImpactScore)
	metrics.SessionScore.Set(float64(st.SessionScore))
	metrics.SetMode(st.Mode)
}

// scoreDelta converts an impact score into session-score points.
// Every tick is worth at least one point.
func scoreDelta(impact float64) uint64 {
	points := math.Round(impact / 10)
	if points < 1 {
		return 1
	}
	return uint64(points)
}

// saturatingAdd adds without wrapping; the score pins at MaxUint64.
func saturatingAdd(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}
