// Package capture glues the clipboard backend, the window-metadata probe,
// the blacklist and the history store into the daemon's watch loop, gated
// by a pausable capture state.
package capture

import "sync"

// State is the process-wide capture gate: Running (initial) or Paused.
// It lives only for the daemon process; a fresh start is always Running.
type State struct {
	mu     sync.Mutex
	paused bool
}

// Pause stops new clipboard content from being recorded. Idempotent.
func (s *State) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume allows capture to continue from the next change. Idempotent.
func (s *State) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Paused reports whether capture is currently paused.
func (s *State) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}
