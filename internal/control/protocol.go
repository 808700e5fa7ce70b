// Package control implements the daemon's local control channel: the
// unix-socket instance lock, the newline-delimited JSON request/response
// protocol, the dispatching server, and the client used by the CLI and the
// picker.
//
// One connection carries exactly one exchange: <request json>\n in,
// <response json>\n out, then the connection closes.
package control

import "go.klb.dev/slate/internal/history"

// Command identifies a control request.
type Command string

const (
	CmdHistory Command = "history"
	CmdPause   Command = "pause-capture"
	CmdResume  Command = "resume-capture"
	CmdStatus  Command = "capture-status"
	CmdRestore Command = "restore"
)

// Capture states reported by CmdStatus.
const (
	StateRunning = "running"
	StatePaused  = "paused"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request is the client → daemon envelope.
type Request struct {
	Command Command `json:"command"`

	// CmdRestore — entry id to write back to the clipboard.
	ID uint64 `json:"id,omitempty"`

	// CmdHistory — include image payload bytes / cap entry count.
	Images bool `json:"images,omitempty"`
	Limit  int  `json:"limit,omitempty"`
}

// Response is the daemon → client envelope.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`

	// CmdStatus
	State string `json:"state,omitempty"`

	// CmdHistory — entries most-recent-first.
	Entries []history.Entry `json:"entries,omitempty"`
}

// OK reports whether the response carries StatusOK.
func (r *Response) OK() bool { return r.Status == StatusOK }
