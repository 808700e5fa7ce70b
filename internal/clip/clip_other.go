//go:build !linux

package clip

// New returns the headless backend on platforms slate does not target.
// The active-window probes and the picker are Linux desktop tools; on
// anything else the daemon still runs but captures nothing.
func New() Backend {
	return &headlessBackend{watchCh: make(chan struct{})}
}
