// Package history implements the clipboard history store: an ordered,
// capacity-bounded, deduplicating collection of captured entries persisted
// as a single JSON document.
package history

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"go.klb.dev/slate/internal/window"
)

// MIME types stored in history. The clipboard backend only produces these
// two; the MIME doubles as the content variant's format tag.
const (
	MIMEText  = "text/plain"
	MIMEImage = "image/png"
)

// Item is one piece of clipboard content with a MIME type. Data is
// base64-encoded in JSON by virtue of being a byte slice.
type Item struct {
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// NewTextItem creates a text/plain Item from a plain string.
func NewTextItem(text string) Item {
	return Item{MIME: MIMEText, Data: []byte(text)}
}

// Empty reports whether the item carries no content.
func (it Item) Empty() bool { return len(it.Data) == 0 }

// Hash returns a stable hex digest of the item's MIME type and content
// bytes. Equal content always hashes equally, regardless of capture time.
func (it Item) Hash() string {
	h := xxhash.New()
	_, _ = h.WriteString(it.MIME)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(it.Data)
	return fmt.Sprintf("%016x", h.Sum64())
}

// Entry is one captured clipboard snapshot. Immutable once stored.
type Entry struct {
	ID         uint64           `json:"id"`
	CapturedAt time.Time        `json:"captured_at"`
	Item       Item             `json:"content"`
	Hash       string           `json:"hash"`
	Size       int              `json:"size"`
	Window     *window.Metadata `json:"window,omitempty"`
}

// Label renders a single-line human-readable label for the entry, with
// newlines escaped and text truncated to limit characters. Used by the
// history CLI output and the picker menu.
func (e Entry) Label(limit int) string {
	if e.Item.MIME != MIMEText {
		return fmt.Sprintf("[%s] %d bytes", e.Item.MIME, e.Size)
	}
	s := string(e.Item.Data)
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		default:
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		return string(out[:limit]) + "..."
	}
	return string(out)
}
