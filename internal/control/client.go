package control

import (
	"fmt"
	"net"
)

// RoundTrip performs one control exchange with the running daemon: dial,
// send req, read the response, close.
func RoundTrip(req *Request) (*Response, error) {
	nc, err := net.DialTimeout("unix", SocketPath(), dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("daemon not reachable at %s (is it running?): %w", SocketPath(), err)
	}
	c := newConn(nc)
	defer c.Close()

	if err := c.writeJSON(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Command, err)
	}
	var resp Response
	if err := c.readJSON(&resp); err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Command, err)
	}
	return &resp, nil
}
