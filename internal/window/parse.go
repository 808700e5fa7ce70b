package window

import (
	"encoding/json"
	"strconv"
	"strings"
)

// parseHyprctlOutput decodes `hyprctl activewindow -j` JSON.
func parseHyprctlOutput(raw string) *Metadata {
	var payload struct {
		Title        string `json:"title"`
		Class        string `json:"class"`
		InitialClass string `json:"initialClass"`
		InitialTitle string `json:"initialTitle"`
		Address      string `json:"address"`
		PID          *int64 `json:"pid"`
		XWayland     *bool  `json:"xwayland"`
		Workspace    *struct {
			ID   *int64 `json:"id"`
			Name string `json:"name"`
		} `json:"workspace"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		return nil
	}

	meta := &Metadata{
		Backend:      "hyprctl",
		Title:        title,
		AppID:        strings.TrimSpace(payload.Class),
		InitialAppID: strings.TrimSpace(payload.InitialClass),
		InitialTitle: strings.TrimSpace(payload.InitialTitle),
		WindowID:     strings.TrimSpace(payload.Address),
		PID:          payload.PID,
		IsXWayland:   payload.XWayland,
	}
	if ws := payload.Workspace; ws != nil {
		meta.WorkspaceID = ws.ID
		meta.WorkspaceName = strings.TrimSpace(ws.Name)
	}
	return meta
}

// parseXdotoolOutput decodes the key=value lines emitted by xdotoolScript.
// A title is mandatory; everything else is optional.
func parseXdotoolOutput(raw string) *Metadata {
	meta := &Metadata{Backend: "xdotool"}
	for _, line := range strings.Split(raw, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "title":
			meta.Title = value
		case "app_id":
			meta.AppID = value
		case "window_id":
			meta.WindowID = value
		case "pid":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				meta.PID = &n
			}
		case "workspace_id":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				meta.WorkspaceID = &n
			}
		}
	}
	if meta.Title == "" {
		return nil
	}
	return meta
}

// parseTitleOutput treats the entire trimmed output as a window title.
// Used for the user-configured command backend.
func parseTitleOutput(raw string) *Metadata {
	title := strings.TrimSpace(raw)
	if title == "" {
		return nil
	}
	return &Metadata{Backend: "command", Title: title}
}
