//go:build !linux

package cgroups

import "log/slog"

// NewEnforcer returns a no-op on platforms without cgroup v2.
func NewEnforcer(log *slog.Logger) Enforcer {
	log.Warn("cgroup v2 unavailable: allocations will not be enforced", "reason", "host is not linux")
	return Noop{log: log}
}

// Available reports whether the cgroup v2 CPU controller is present.
// Never true off Linux.
func Available() bool {
	return false
}
