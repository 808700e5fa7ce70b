package control

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	// maxLineSize is the largest protocol line accepted (16 MiB); image
	// payloads in history responses can be large.
	maxLineSize = 16 * 1024 * 1024

	ioDeadline = 5 * time.Second
)

// conn wraps a net.Conn with buffered newline-delimited JSON framing and
// per-operation deadlines, so a stalled peer can never wedge the daemon.
type conn struct {
	nc net.Conn
	br *bufio.Reader
}

func newConn(nc net.Conn) *conn {
	return &conn{nc: nc, br: bufio.NewReaderSize(nc, 64*1024)}
}

func (c *conn) Close() error { return c.nc.Close() }

func (c *conn) writeJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_ = c.nc.SetWriteDeadline(time.Now().Add(ioDeadline))
	defer func() { _ = c.nc.SetWriteDeadline(time.Time{}) }()
	_, err = c.nc.Write(append(raw, '\n'))
	return err
}

func (c *conn) readJSON(v any) error {
	_ = c.nc.SetReadDeadline(time.Now().Add(ioDeadline))
	defer func() { _ = c.nc.SetReadDeadline(time.Time{}) }()
	line, err := c.br.ReadBytes('\n')
	if err != nil {
		return err
	}
	if len(line) > maxLineSize {
		return fmt.Errorf("message too large (%d bytes)", len(line))
	}
	return json.Unmarshal(line[:len(line)-1], v)
}
