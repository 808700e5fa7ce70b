// Package clip provides access to the system clipboard. Build constraints
// select the implementation:
//
//	clip_linux.go — golang.design/x/clipboard, polling change detection
//	clip_other.go — headless no-op stub for every other platform
//
// A backend write marks the written content as already seen, so the
// daemon's own restore writes are never announced back through Watch.
package clip

import "go.klb.dev/slate/internal/history"

// Backend is the capability interface over the OS clipboard.
type Backend interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Read returns the current clipboard content, preferring text over
	// image. ok is false when the clipboard is empty or holds only
	// unsupported types.
	Read() (item history.Item, ok bool)

	// Write replaces the clipboard content. The written content is
	// recorded as seen and does not produce a Watch signal.
	Write(item history.Item) error

	// Watch returns a channel that receives a signal whenever the
	// clipboard changes externally. The channel is never closed; callers
	// should Read() on receipt.
	Watch() <-chan struct{}

	// Close releases backend resources.
	Close()
}
