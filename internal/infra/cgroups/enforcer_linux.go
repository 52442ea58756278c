//go:build linux

package cgroups

import (
	"log/slog"
	"os"
	"path/filepath"
)

// NewEnforcer returns the real cgroup v2 enforcer on Linux.
func NewEnforcer(log *slog.Logger) Enforcer {
	return NewFS(Root, log)
}

// Available reports whether the cgroup v2 CPU controller is present
// at the standard mount point.
func Available() bool {
	_, err := os.Stat(filepath.Join(Root, "cgroup.controllers"))
	return err == nil
}
