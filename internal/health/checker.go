// Package health provides periodic self-checks for the daemon:
// telemetry freshness, cgroup controller presence, and GPU tool
// availability. Results are exported as Prometheus gauges and over
// the API.
package health

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/dig-network/digd/internal/app/governor"
	"github.com/dig-network/digd/internal/infra/cgroups"
	"github.com/dig-network/digd/internal/infra/metrics"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status is the result of one health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a checker with the standard daemon checks.
// pollInterval is the control loop's cadence; telemetry older than
// three ticks counts as stale.
func NewChecker(store *governor.Store, pollInterval time.Duration) *Checker {
	staleAfter := 3 * pollInterval
	return &Checker{
		interval: 60 * time.Second,
		checks: []Check{
			{
				Name: "telemetry",
				CheckFn: func(ctx context.Context) error {
					age := time.Since(store.Telemetry().Timestamp)
					if age > staleAfter {
						return fmt.Errorf("last snapshot is %s old (limit %s)", age.Round(time.Millisecond), staleAfter)
					}
					return nil
				},
			},
			{
				Name: "cgroups",
				CheckFn: func(ctx context.Context) error {
					if !cgroups.Available() {
						return fmt.Errorf("cgroup v2 cpu controller not present; allocations are no-ops")
					}
					return nil
				},
			},
			{
				Name: "gpu_tool",
				CheckFn: func(ctx context.Context) error {
					if _, err := exec.LookPath("nvidia-smi"); err != nil {
						return fmt.Errorf("nvidia-smi not in PATH; GPU telemetry is synthetic")
					}
					return nil
				},
			},
		},
	}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

// Statuses returns the most recent results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Status, len(c.statuses))
	copy(out, c.statuses)
	return out
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, 0, len(c.checks))
	for _, check := range c.checks {
		status := Status{Name: check.Name, Healthy: true, CheckedAt: time.Now()}
		if err := check.CheckFn(ctx); err != nil {
			status.Healthy = false
			status.Error = err.Error()
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(0)
		} else {
			metrics.HealthCheckStatus.WithLabelValues(check.Name).Set(1)
		}
		statuses = append(statuses, status)
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}
