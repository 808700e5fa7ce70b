// Package window captures metadata about the currently focused window.
//
// Probing is best-effort by contract: a Provider returns nil on any failure
// (tool absent, non-zero exit, unparseable output, timeout) and never an
// error, so a broken or missing desktop tool can only degrade entries to
// "no window metadata", never block clipboard capture.
package window

import (
	"context"
	"os/exec"
	"strings"

	"go.klb.dev/slate/internal/config"
)

// Metadata describes the focused window at capture time. Only Backend and
// Title are guaranteed; the rest depends on what the probing backend
// exposes.
type Metadata struct {
	Backend       string `json:"backend"`
	Title         string `json:"title"`
	AppID         string `json:"app_id,omitempty"`
	InitialAppID  string `json:"initial_app_id,omitempty"`
	InitialTitle  string `json:"initial_title,omitempty"`
	WindowID      string `json:"window_id,omitempty"`
	PID           *int64 `json:"pid,omitempty"`
	WorkspaceID   *int64 `json:"workspace_id,omitempty"`
	WorkspaceName string `json:"workspace_name,omitempty"`
	IsXWayland    *bool  `json:"is_xwayland,omitempty"`
}

// Provider yields metadata for the currently focused window, or nil.
type Provider interface {
	Capture(ctx context.Context) *Metadata
}

// FromConfig selects a Provider from the configured backend kind.
func FromConfig(cfg config.ActiveWindow) Provider {
	switch cfg.Backend {
	case config.WindowDisabled:
		return disabledProvider{}
	case config.WindowCommand:
		return &commandProvider{
			program: cfg.Command,
			args:    cfg.Args,
			parse:   parseTitleOutput,
		}
	default:
		return newAutoProvider()
	}
}

// disabledProvider always yields absent metadata at zero cost.
type disabledProvider struct{}

func (disabledProvider) Capture(context.Context) *Metadata { return nil }

// commandProvider runs one fixed external program and parses its stdout.
type commandProvider struct {
	program string
	args    []string
	parse   func(string) *Metadata
}

func (p *commandProvider) Capture(ctx context.Context) *Metadata {
	out, err := exec.CommandContext(ctx, p.program, p.args...).Output()
	if err != nil {
		return nil
	}
	return p.parse(strings.TrimSpace(string(out)))
}

// autoProvider tries providers in order and returns the first hit:
// hyprctl (rich Hyprland JSON), then xdotool (X11), then nil.
type autoProvider struct {
	providers []Provider
}

func newAutoProvider() Provider {
	return &autoProvider{
		providers: []Provider{
			&commandProvider{
				program: "hyprctl",
				args:    []string{"activewindow", "-j"},
				parse:   parseHyprctlOutput,
			},
			&commandProvider{
				program: "sh",
				args:    []string{"-c", xdotoolScript},
				parse:   parseXdotoolOutput,
			},
		},
	}
}

func (p *autoProvider) Capture(ctx context.Context) *Metadata {
	for _, provider := range p.providers {
		if meta := provider.Capture(ctx); meta != nil {
			return meta
		}
	}
	return nil
}

// xdotoolScript gathers the active window's properties as key=value lines.
// Individual property lookups may fail (title-less windows); only the
// window id itself is mandatory.
const xdotoolScript = `window_id=$(xdotool getactivewindow 2>/dev/null) || exit 1; ` +
	`title=$(xdotool getwindowname "$window_id" 2>/dev/null || true); ` +
	`app_id=$(xdotool getwindowclassname "$window_id" 2>/dev/null || true); ` +
	`pid=$(xdotool getwindowpid "$window_id" 2>/dev/null || true); ` +
	`workspace_id=$(xdotool get_desktop_for_window "$window_id" 2>/dev/null || true); ` +
	`printf 'window_id=%s\n' "$window_id"; ` +
	`printf 'title=%s\n' "$title"; ` +
	`printf 'app_id=%s\n' "$app_id"; ` +
	`printf 'pid=%s\n' "$pid"; ` +
	`printf 'workspace_id=%s\n' "$workspace_id";`
