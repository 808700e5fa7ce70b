package capture

import (
	"context"
	"log/slog"
	"time"

	"go.klb.dev/slate/internal/clip"
	"go.klb.dev/slate/internal/history"
	"go.klb.dev/slate/internal/window"
)

// DefaultProbeTimeout bounds a single window-metadata subprocess call so a
// hung external tool cannot stall the watch loop.
const DefaultProbeTimeout = 2 * time.Second

// Watcher runs the clipboard watch loop for the life of the daemon.
type Watcher struct {
	Backend      clip.Backend
	Store        *history.Store
	State        *State
	Windows      window.Provider
	Blacklist    []string
	ProbeTimeout time.Duration
}

// Run consumes backend change signals until ctx is cancelled. Each signal
// is handled to completion: read, pause gate, metadata probe, blacklist,
// insert. A failed read is not retried; the next change event retries
// naturally.
func (w *Watcher) Run(ctx context.Context) {
	timeout := w.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.Backend.Watch():
		}

		if w.State.Paused() {
			slog.Debug("capture paused, ignoring clipboard change")
			continue
		}

		item, ok := w.Backend.Read()
		if !ok {
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, timeout)
		meta := w.Windows.Capture(probeCtx)
		cancel()

		if Blocked(meta, w.Blacklist) {
			slog.Debug("capture blocked by blacklist",
				"app_id", meta.AppID, "title", meta.Title)
			continue
		}

		if id, inserted := w.Store.Insert(item, meta); inserted {
			slog.Info("clipboard entry captured",
				"id", id, "mime", item.MIME, "bytes", len(item.Data))
		}
	}
}
