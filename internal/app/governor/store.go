package governor

import (
	"sync"

	"github.com/dig-network/digd/internal/domain"
)

// State is the runtime aggregate the control loop and mode-change
// requests mutate and queries read. It is always handled by value
// outside the store, so readers can never observe a half-written
// update.
type State struct {
	Mode          domain.PerformanceMode
	Allocation    domain.Allocation
	Telemetry     domain.TelemetrySnapshot
	ActiveMission string // empty when no mission is active
	SessionScore  uint64
}

// Store guards the runtime state with reader/writer semantics: any
// number of concurrent reads, serialized exclusive writes. Each
// Update commits all of its field changes atomically.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore creates a store with the given initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Snapshot returns a copy of the full runtime state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Mode returns the current performance mode.
func (s *Store) Mode() domain.PerformanceMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Mode
}

// Telemetry returns the latest telemetry snapshot.
func (s *Store) Telemetry() domain.TelemetrySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Telemetry
}

// Update applies fn under the write lock. Everything fn mutates
// becomes visible to readers together. fn must not block on I/O;
// enforcement runs before the caller takes the lock.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}
