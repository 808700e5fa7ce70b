package control

import (
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/slate/internal/capture"
	"go.klb.dev/slate/internal/history"
)

// stubBackend records clipboard writes from restore handling.
type stubBackend struct {
	mu      sync.Mutex
	written []history.Item
}

func (b *stubBackend) Name() string               { return "stub" }
func (b *stubBackend) Read() (history.Item, bool) { return history.Item{}, false }

func (b *stubBackend) Write(it history.Item) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.written = append(b.written, it)
	return nil
}

func (b *stubBackend) Watch() <-chan struct{} { return nil }
func (b *stubBackend) Close()                 {}

func (b *stubBackend) writes() []history.Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]history.Item(nil), b.written...)
}

func useTempSocket(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "slate.sock")
	t.Setenv("SLATE_SOCKET", path)
	return path
}

func TestListenLockContention(t *testing.T) {
	useTempSocket(t)

	ln, err := Listen()
	require.NoError(t, err)

	_, err = Listen()
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, ln.Close())

	// After the live instance releases the lock, acquisition succeeds.
	ln2, err := Listen()
	require.NoError(t, err)
	defer ln2.Close()
}

func TestListenReclaimsStaleSocket(t *testing.T) {
	path := useTempSocket(t)

	// Leave a socket file behind with nothing listening, as a crashed
	// daemon would.
	addr, err := net.ResolveUnixAddr("unix", path)
	require.NoError(t, err)
	stale, err := net.ListenUnix("unix", addr)
	require.NoError(t, err)
	stale.SetUnlinkOnClose(false)
	require.NoError(t, stale.Close())

	ln, err := Listen()
	require.NoError(t, err)
	defer ln.Close()
	assert.True(t, IsRunning())
}

func startServer(t *testing.T) (*Server, *stubBackend) {
	t.Helper()
	useTempSocket(t)

	ln, err := Listen()
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	backend := &stubBackend{}
	srv := &Server{
		Store: history.Open(history.Options{
			Path:       filepath.Join(t.TempDir(), "history.json"),
			MaxEntries: 10,
		}),
		State:   &capture.State{},
		Backend: backend,
	}
	go srv.Serve(ln)
	return srv, backend
}

func TestHistoryRoundTrip(t *testing.T) {
	srv, _ := startServer(t)
	srv.Store.Insert(history.NewTextItem("alpha"), nil)
	srv.Store.Insert(history.NewTextItem("beta"), nil)

	resp, err := RoundTrip(&Request{Command: CmdHistory})
	require.NoError(t, err)
	require.True(t, resp.OK())
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "beta", string(resp.Entries[0].Item.Data))

	limited, err := RoundTrip(&Request{Command: CmdHistory, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited.Entries, 1)
}

func TestPauseResumeStatus(t *testing.T) {
	startServer(t)

	resp, err := RoundTrip(&Request{Command: CmdStatus})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, resp.State)

	resp, err = RoundTrip(&Request{Command: CmdPause})
	require.NoError(t, err)
	require.True(t, resp.OK())

	resp, err = RoundTrip(&Request{Command: CmdStatus})
	require.NoError(t, err)
	assert.Equal(t, StatePaused, resp.State)

	_, err = RoundTrip(&Request{Command: CmdResume})
	require.NoError(t, err)

	resp, err = RoundTrip(&Request{Command: CmdStatus})
	require.NoError(t, err)
	assert.Equal(t, StateRunning, resp.State)
}

func TestRestoreRoundTrip(t *testing.T) {
	srv, backend := startServer(t)
	id, _ := srv.Store.Insert(history.NewTextItem("bring me back"), nil)

	resp, err := RoundTrip(&Request{Command: CmdRestore, ID: id})
	require.NoError(t, err)
	require.True(t, resp.OK())
	written := backend.writes()
	require.Len(t, written, 1)
	assert.Equal(t, "bring me back", string(written[0].Data))
}

func TestRestoreNotFound(t *testing.T) {
	srv, backend := startServer(t)
	srv.Store.Insert(history.NewTextItem("only entry"), nil)

	resp, err := RoundTrip(&Request{Command: CmdRestore, ID: 999})
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "not found")
	assert.Empty(t, backend.writes())
	assert.Equal(t, 1, srv.Store.Len(), "failed restore leaves history unchanged")
}

func TestUnknownCommand(t *testing.T) {
	startServer(t)

	resp, err := RoundTrip(&Request{Command: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, StatusError, resp.Status)
}

func TestIsRunning(t *testing.T) {
	useTempSocket(t)
	assert.False(t, IsRunning())

	ln, err := Listen()
	require.NoError(t, err)
	defer ln.Close()
	assert.True(t, IsRunning())
}
