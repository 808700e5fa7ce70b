package control

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// ErrAlreadyRunning is returned by Listen when another live daemon holds
// the control socket.
var ErrAlreadyRunning = errors.New("another slate daemon is already running")

const dialTimeout = 2 * time.Second

// SocketPath returns the control-socket path, which doubles as the
// single-instance lock:
//
//   - $SLATE_SOCKET when set
//   - $XDG_RUNTIME_DIR/slate-<user>.sock
//   - <tmpdir>/slate-<user>.sock as a fallback
func SocketPath() string {
	if s := os.Getenv("SLATE_SOCKET"); s != "" {
		return s
	}
	name := fmt.Sprintf("slate-%s.sock", userHint())
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, name)
	}
	return filepath.Join(os.TempDir(), name)
}

func userHint() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "user"
}

// IsRunning reports whether a daemon appears to be listening on the
// control socket. Cheap dial-and-close; no data is exchanged.
func IsRunning() bool {
	c, err := net.DialTimeout("unix", SocketPath(), dialTimeout)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Listen acquires the instance lock by binding the control socket.
// If the bind fails because a socket file exists, the file is probed:
// a live listener means ErrAlreadyRunning; a dead socket left by a
// crashed instance is removed and the bind retried once.
func Listen() (net.Listener, error) {
	path := SocketPath()

	ln, err := net.Listen("unix", path)
	if err == nil {
		return ln, nil
	}

	if c, derr := net.DialTimeout("unix", path, dialTimeout); derr == nil {
		_ = c.Close()
		return nil, ErrAlreadyRunning
	}

	// Stale socket from a crashed run; reclaim it.
	if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
		return nil, fmt.Errorf("reclaim stale socket %s: %w", path, rmErr)
	}
	ln, err = net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	return ln, nil
}
