//go:build linux

package clip

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.design/x/clipboard"

	"go.klb.dev/slate/internal/history"
)

const pollInterval = 500 * time.Millisecond

type linuxBackend struct {
	watchCh chan struct{}
	done    chan struct{}

	mu       sync.Mutex
	lastText []byte
	lastImg  []byte
}

// New returns the Linux clipboard backend, or a headless no-op backend
// when the display environment is unavailable. clipboard.Init is called
// here rather than in init() so the control subcommands never touch the
// display.
func New() Backend {
	if err := clipboard.Init(); err != nil {
		slog.Warn("clipboard unavailable, running headless", "err", err)
		return &headlessBackend{watchCh: make(chan struct{})}
	}
	b := &linuxBackend{
		watchCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	// last-seen state starts empty, so whatever is on the clipboard at
	// startup is announced as the first change.
	go b.poll()
	return b
}

func (b *linuxBackend) Name() string { return "linux clipboard (poll)" }

func (b *linuxBackend) poll() {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-t.C:
			text := clipboard.Read(clipboard.FmtText)
			img := clipboard.Read(clipboard.FmtImage)
			b.mu.Lock()
			changed := !bytes.Equal(text, b.lastText) || !bytes.Equal(img, b.lastImg)
			if changed {
				b.lastText = text
				b.lastImg = img
			}
			b.mu.Unlock()
			if changed {
				select {
				case b.watchCh <- struct{}{}:
				default:
				}
			}
		}
	}
}

func (b *linuxBackend) Read() (history.Item, bool) {
	if text := clipboard.Read(clipboard.FmtText); len(text) > 0 {
		return history.Item{MIME: history.MIMEText, Data: text}, true
	}
	if img := clipboard.Read(clipboard.FmtImage); len(img) > 0 {
		return history.Item{MIME: history.MIMEImage, Data: img}, true
	}
	return history.Item{}, false
}

// Write sets the clipboard and records the content as already seen, so the
// poller does not re-announce a restore as a new external change.
func (b *linuxBackend) Write(item history.Item) error {
	switch item.MIME {
	case history.MIMEText:
		clipboard.Write(clipboard.FmtText, item.Data)
		b.mu.Lock()
		b.lastText = item.Data
		b.lastImg = nil
		b.mu.Unlock()
	case history.MIMEImage:
		clipboard.Write(clipboard.FmtImage, item.Data)
		b.mu.Lock()
		b.lastText = nil
		b.lastImg = item.Data
		b.mu.Unlock()
	default:
		return fmt.Errorf("unsupported MIME type: %s", item.MIME)
	}
	return nil
}

func (b *linuxBackend) Watch() <-chan struct{} { return b.watchCh }
func (b *linuxBackend) Close()                 { close(b.done) }
