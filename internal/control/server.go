package control

import (
	"fmt"
	"log/slog"
	"net"

	"go.klb.dev/slate/internal/capture"
	"go.klb.dev/slate/internal/clip"
	"go.klb.dev/slate/internal/history"
)

// Server dispatches control requests against the daemon's shared state.
type Server struct {
	Store   *history.Store
	State   *capture.State
	Backend clip.Backend
}

// Serve accepts connections until the listener is closed. Requests are
// handled one at a time, each to completion before the next begins; the
// wire deadlines bound how long a stalled client can hold its turn.
func (s *Server) Serve(ln net.Listener) {
	for {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		s.handle(nc)
	}
}

func (s *Server) handle(nc net.Conn) {
	c := newConn(nc)
	defer c.Close()

	var req Request
	if err := c.readJSON(&req); err != nil {
		slog.Debug("control: bad request", "err", err)
		return
	}

	resp := s.dispatch(&req)
	if err := c.writeJSON(resp); err != nil {
		slog.Debug("control: response write failed", "cmd", req.Command, "err", err)
	}
}

func (s *Server) dispatch(req *Request) *Response {
	switch req.Command {
	case CmdHistory:
		entries := s.Store.List(history.ListOptions{Images: req.Images, Limit: req.Limit})
		return &Response{Status: StatusOK, Entries: entries}

	case CmdPause:
		s.State.Pause()
		slog.Info("capture paused")
		return &Response{Status: StatusOK}

	case CmdResume:
		s.State.Resume()
		slog.Info("capture resumed")
		return &Response{Status: StatusOK}

	case CmdStatus:
		state := StateRunning
		if s.State.Paused() {
			state = StatePaused
		}
		return &Response{Status: StatusOK, State: state}

	case CmdRestore:
		item, err := s.Store.Restore(req.ID)
		if err != nil {
			return &Response{Status: StatusError, Error: fmt.Sprintf("entry %d not found", req.ID)}
		}
		if err := s.Backend.Write(item); err != nil {
			return &Response{Status: StatusError, Error: fmt.Sprintf("clipboard write: %v", err)}
		}
		slog.Info("entry restored", "id", req.ID, "mime", item.MIME)
		return &Response{Status: StatusOK}

	default:
		return &Response{Status: StatusError, Error: fmt.Sprintf("unknown command %q", req.Command)}
	}
}
