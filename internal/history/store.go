package history

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.klb.dev/slate/internal/window"
)

// ErrNotFound is returned by Restore for an unknown entry id.
var ErrNotFound = errors.New("history: entry not found")

// Options configures a Store.
type Options struct {
	// Path of the history JSON file.
	Path string
	// MaxEntries bounds the history length; older entries are evicted.
	MaxEntries int
	// DedupAll extends deduplication to the whole history: inserting
	// content equal to any existing entry replaces it at the head instead
	// of duplicating it. The default dedups only against the head entry.
	DedupAll bool
}

// Store owns the ordered clipboard history, most-recent-first. All access
// goes through its mutex; the watch loop and the control server share one
// Store instance.
type Store struct {
	mu       sync.Mutex
	path     string
	max      int
	dedupAll bool
	nextID   uint64
	entries  []Entry
}

// Open loads the history file at opts.Path and returns a ready Store.
// A missing file is an empty history. A malformed file is logged and
// treated as empty rather than refusing to start; the next successful
// write replaces it.
func Open(opts Options) *Store {
	s := &Store{
		path:     opts.Path,
		max:      opts.MaxEntries,
		dedupAll: opts.DedupAll,
		nextID:   1,
	}
	entries, err := load(opts.Path)
	if err != nil {
		slog.Warn("history file unreadable, starting empty", "path", opts.Path, "err", err)
		return s
	}
	if len(entries) > s.max {
		entries = entries[:s.max]
	}
	s.entries = entries
	for _, e := range entries {
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return s
}

// Insert records a newly captured item. It returns the assigned entry id
// and true, or zero and false when the item is empty or suppressed by
// deduplication. The updated history is written to disk before Insert
// returns; a write failure is logged and the in-memory state remains
// authoritative.
func (s *Store) Insert(item Item, meta *window.Metadata) (uint64, bool) {
	if item.Empty() {
		return 0, false
	}
	hash := item.Hash()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 && s.entries[0].Hash == hash {
		return 0, false
	}
	if s.dedupAll {
		for i, e := range s.entries {
			if e.Hash == hash {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				break
			}
		}
	}

	e := Entry{
		ID:         s.nextID,
		CapturedAt: time.Now(),
		Item:       item,
		Hash:       hash,
		Size:       len(item.Data),
		Window:     meta,
	}
	s.nextID++
	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}

	if err := save(s.path, s.entries); err != nil {
		slog.Error("history write failed", "path", s.path, "err", err)
	}
	return e.ID, true
}

// ListOptions controls List output.
type ListOptions struct {
	// Images includes image payload bytes. When false, image entries are
	// returned with metadata and size only, keeping control-protocol
	// responses cheap.
	Images bool
	// Limit caps the number of entries returned; 0 means all.
	Limit int
}

// List returns a snapshot of the history, most-recent-first.
func (s *Store) List(opts ListOptions) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	if opts.Limit > 0 && opts.Limit < n {
		n = opts.Limit
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	if !opts.Images {
		for i := range out {
			if out[i].Item.MIME != MIMEText {
				out[i].Item.Data = nil
			}
		}
	}
	return out
}

// Restore returns the content of the entry with the given id, or
// ErrNotFound. It does not mutate history; writing the content back to the
// system clipboard is the caller's job.
func (s *Store) Restore(id uint64) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e.Item, nil
		}
	}
	return Item{}, ErrNotFound
}

// Len returns the current number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
