package clip

import "go.klb.dev/slate/internal/history"

// headlessBackend is a no-op clipboard backend for environments without a
// display server. It never produces Watch events and discards writes.
type headlessBackend struct {
	watchCh chan struct{}
}

func (b *headlessBackend) Name() string               { return "headless (no-op)" }
func (b *headlessBackend) Read() (history.Item, bool) { return history.Item{}, false }
func (b *headlessBackend) Write(_ history.Item) error { return nil }
func (b *headlessBackend) Watch() <-chan struct{}     { return b.watchCh }
func (b *headlessBackend) Close()                     {}
