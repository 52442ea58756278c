// Package cgroups programs the cgroup v2 CPU controller for the two
// digd bands: "dig-ui" (interactive foreground) and "dig-worker"
// (background compute). Only the CPU percentages of an Allocation are
// enforced — cgroups has no GPU controller; GPU percentages are
// advisory weights consumed by the workers themselves.
//
// NewEnforcer selects the real implementation on Linux and a no-op
// everywhere else, so callers never branch on platform.
package cgroups

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dig-network/digd/internal/domain"
)

const (
	// Root is the cgroup v2 mount point.
	Root = "/sys/fs/cgroup"

	// UIGroup and WorkerGroup are the two named resource bands.
	UIGroup     = "dig-ui"
	WorkerGroup = "dig-worker"

	// periodUS is the fixed CPU accounting period for cpu.max.
	periodUS = 100_000
)

// Enforcer applies an Allocation to the host's resource controller.
// Apply is best-effort: callers log failures and carry on, the
// in-memory allocation advances regardless.
type Enforcer interface {
	Apply(alloc domain.Allocation) error
}

// FS writes cgroup v2 control files under a root directory. The root
// is parameterized so tests can point it at a scratch tree.
type FS struct {
	root string
	log  *slog.Logger
}

// NewFS creates a filesystem-backed enforcer rooted at dir.
func NewFS(dir string, log *slog.Logger) *FS {
	return &FS{root: dir, log: log}
}

// Apply programs cpu.max and cpu.weight for both bands. Group
// directories are created if missing; control files that do not exist
// (controller not delegated) are skipped. Individual write failures
// are logged and the remaining files still attempted.
func (f *FS) Apply(alloc domain.Allocation) error {
	bands := []struct {
		group string
		pct   int
	}{
		{UIGroup, alloc.UICPUPercent},
		{WorkerGroup, alloc.WorkerCPUPercent},
	}

	for _, band := range bands {
		dir := filepath.Join(f.root, band.group)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cgroup %s: %w", band.group, err)
		}
		f.writeIfExists(filepath.Join(dir, "cpu.max"), cpuMax(band.pct))
		f.writeIfExists(filepath.Join(dir, "cpu.weight"), cpuWeight(band.pct))
	}
	return nil
}

// writeIfExists writes value to path only when the control file is
// already present. A missing file means the CPU controller is not
// enabled for this subtree; that is a silent skip, not an error.
func (f *FS) writeIfExists(path, value string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		f.log.Warn("cgroup write failed", "path", path, "error", err)
	}
}

// cpuMax renders the "quota period" pair for cpu.max.
func cpuMax(percent int) string {
	pct := clampPercent(percent)
	quota := periodUS * pct / 100
	return fmt.Sprintf("%d %d", quota, periodUS)
}

// cpuWeight maps a percentage onto the cgroup weight range [100,10000].
func cpuWeight(percent int) string {
	pct := clampPercent(percent)
	weight := pct*9900/100 + 100
	return fmt.Sprintf("%d", weight)
}

func clampPercent(p int) int {
	if p < 1 {
		return 1
	}
	if p > 100 {
		return 100
	}
	return p
}

// Noop satisfies Enforcer on platforms without cgroup v2.
type Noop struct {
	log *slog.Logger
}

// Apply records the skip at debug level and succeeds.
func (n Noop) Apply(alloc domain.Allocation) error {
	if n.log != nil {
		n.log.Debug("cgroup apply skipped: controller unavailable", "profile", alloc.Profile)
	}
	return nil
}
