package capture

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/slate/internal/history"
	"go.klb.dev/slate/internal/window"
)

// stubBackend feeds scripted clipboard content to the watch loop.
type stubBackend struct {
	ch chan struct{}

	mu   sync.Mutex
	item history.Item
	ok   bool
}

func (b *stubBackend) set(item history.Item) {
	b.mu.Lock()
	b.item, b.ok = item, true
	b.mu.Unlock()
	b.ch <- struct{}{}
}

func (b *stubBackend) Name() string { return "stub" }

func (b *stubBackend) Read() (history.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.item, b.ok
}

func (b *stubBackend) Write(history.Item) error { return nil }
func (b *stubBackend) Watch() <-chan struct{}   { return b.ch }
func (b *stubBackend) Close()                   {}

// providerFunc adapts a function to window.Provider.
type providerFunc func(context.Context) *window.Metadata

func (f providerFunc) Capture(ctx context.Context) *window.Metadata { return f(ctx) }

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Run(ctx)
}

func newWatcherStore(t *testing.T) *history.Store {
	t.Helper()
	return history.Open(history.Options{
		Path:       filepath.Join(t.TempDir(), "history.json"),
		MaxEntries: 10,
	})
}

func TestWatcherCapturesChanges(t *testing.T) {
	backend := &stubBackend{ch: make(chan struct{})}
	store := newWatcherStore(t)

	w := &Watcher{
		Backend: backend,
		Store:   store,
		State:   &State{},
		Windows: providerFunc(func(context.Context) *window.Metadata {
			return &window.Metadata{Backend: "stub", Title: "Editor", AppID: "editor"}
		}),
	}
	startWatcher(t, w)

	backend.set(history.NewTextItem("hello"))

	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
	entries := store.List(history.ListOptions{})
	assert.Equal(t, "hello", string(entries[0].Item.Data))
	require.NotNil(t, entries[0].Window)
	assert.Equal(t, "editor", entries[0].Window.AppID)
}

func TestWatcherPauseGate(t *testing.T) {
	backend := &stubBackend{ch: make(chan struct{})}
	store := newWatcherStore(t)
	state := &State{}

	w := &Watcher{
		Backend: backend,
		Store:   store,
		State:   state,
		Windows: providerFunc(func(context.Context) *window.Metadata { return nil }),
	}
	startWatcher(t, w)

	state.Pause()
	backend.set(history.NewTextItem("while paused"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, store.Len(), "no capture while paused")

	state.Resume()
	backend.set(history.NewTextItem("after resume"))
	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "after resume", string(store.List(history.ListOptions{})[0].Item.Data))
}

func TestWatcherBlacklistSuppression(t *testing.T) {
	backend := &stubBackend{ch: make(chan struct{})}
	store := newWatcherStore(t)

	var mu sync.Mutex
	meta := &window.Metadata{Backend: "stub", Title: "vault", AppID: "KeePassXC"}
	w := &Watcher{
		Backend: backend,
		Store:   store,
		State:   &State{},
		Windows: providerFunc(func(context.Context) *window.Metadata {
			mu.Lock()
			defer mu.Unlock()
			return meta
		}),
		Blacklist: []string{"keepassxc"},
	}
	startWatcher(t, w)

	backend.set(history.NewTextItem("secret"))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, store.Len(), "blacklisted app must not be captured")

	// Probe now reports absent metadata, which never blocks.
	mu.Lock()
	meta = nil
	mu.Unlock()
	backend.set(history.NewTextItem("public"))
	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresUnreadableClipboard(t *testing.T) {
	backend := &stubBackend{ch: make(chan struct{})}
	store := newWatcherStore(t)

	w := &Watcher{
		Backend: backend,
		Store:   store,
		State:   &State{},
		Windows: providerFunc(func(context.Context) *window.Metadata { return nil }),
	}
	startWatcher(t, w)

	backend.ch <- struct{}{} // change signal but nothing readable
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, store.Len())
}
