package window

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/slate/internal/config"
)

const hyprctlSample = `{
  "address": "0x55d2f3a0",
  "title": "vim - notes.md",
  "class": "kitty",
  "initialClass": "kitty",
  "initialTitle": "kitty",
  "pid": 4242,
  "xwayland": false,
  "workspace": {"id": 3, "name": "code"}
}`

func TestParseHyprctlOutput(t *testing.T) {
	meta := parseHyprctlOutput(hyprctlSample)
	require.NotNil(t, meta)

	assert.Equal(t, "hyprctl", meta.Backend)
	assert.Equal(t, "vim - notes.md", meta.Title)
	assert.Equal(t, "kitty", meta.AppID)
	assert.Equal(t, "kitty", meta.InitialAppID)
	assert.Equal(t, "kitty", meta.InitialTitle)
	assert.Equal(t, "0x55d2f3a0", meta.WindowID)
	require.NotNil(t, meta.PID)
	assert.Equal(t, int64(4242), *meta.PID)
	require.NotNil(t, meta.WorkspaceID)
	assert.Equal(t, int64(3), *meta.WorkspaceID)
	assert.Equal(t, "code", meta.WorkspaceName)
	require.NotNil(t, meta.IsXWayland)
	assert.False(t, *meta.IsXWayland)
}

func TestParseHyprctlOutputRejectsBadInput(t *testing.T) {
	assert.Nil(t, parseHyprctlOutput("not json"))
	assert.Nil(t, parseHyprctlOutput(`{"title": "  "}`), "blank title yields no metadata")
	assert.Nil(t, parseHyprctlOutput(`{}`))
}

func TestParseXdotoolOutput(t *testing.T) {
	raw := "window_id=52428803\n" +
		"title=Mozilla Firefox\n" +
		"app_id=firefox\n" +
		"pid=1337\n" +
		"workspace_id=2"

	meta := parseXdotoolOutput(raw)
	require.NotNil(t, meta)
	assert.Equal(t, "xdotool", meta.Backend)
	assert.Equal(t, "Mozilla Firefox", meta.Title)
	assert.Equal(t, "firefox", meta.AppID)
	assert.Equal(t, "52428803", meta.WindowID)
	require.NotNil(t, meta.PID)
	assert.Equal(t, int64(1337), *meta.PID)
	require.NotNil(t, meta.WorkspaceID)
	assert.Equal(t, int64(2), *meta.WorkspaceID)
}

func TestParseXdotoolOutputTitleMandatory(t *testing.T) {
	assert.Nil(t, parseXdotoolOutput("window_id=1\npid=2"))
	assert.Nil(t, parseXdotoolOutput(""))
}

func TestParseXdotoolOutputPartialFields(t *testing.T) {
	meta := parseXdotoolOutput("title=Bare Window\npid=nonsense\nignored line")
	require.NotNil(t, meta)
	assert.Equal(t, "Bare Window", meta.Title)
	assert.Empty(t, meta.AppID)
	assert.Nil(t, meta.PID)
}

func TestParseTitleOutput(t *testing.T) {
	meta := parseTitleOutput("  Some Window Title \n")
	require.NotNil(t, meta)
	assert.Equal(t, "command", meta.Backend)
	assert.Equal(t, "Some Window Title", meta.Title)

	assert.Nil(t, parseTitleOutput("   "))
}

func TestDisabledProviderYieldsNothing(t *testing.T) {
	p := FromConfig(config.ActiveWindow{Backend: config.WindowDisabled})
	assert.Nil(t, p.Capture(context.Background()))
}

func TestCommandProviderRunsProgram(t *testing.T) {
	p := FromConfig(config.ActiveWindow{
		Backend: config.WindowCommand,
		Command: "echo",
		Args:    []string{"Focused Window"},
	})

	meta := p.Capture(context.Background())
	require.NotNil(t, meta)
	assert.Equal(t, "Focused Window", meta.Title)
	assert.Empty(t, meta.AppID, "command backend yields title only")
}

func TestCommandProviderAbsorbsFailures(t *testing.T) {
	p := FromConfig(config.ActiveWindow{
		Backend: config.WindowCommand,
		Command: "definitely-not-a-real-binary-4471",
	})
	assert.Nil(t, p.Capture(context.Background()))

	exiting := FromConfig(config.ActiveWindow{
		Backend: config.WindowCommand,
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	})
	assert.Nil(t, exiting.Capture(context.Background()))
}

func TestCommandProviderHonorsTimeout(t *testing.T) {
	p := FromConfig(config.ActiveWindow{
		Backend: config.WindowCommand,
		Command: "sleep",
		Args:    []string{"10"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	assert.Nil(t, p.Capture(ctx))
	assert.Less(t, time.Since(start), 5*time.Second, "hung probe must be cut off by the context")
}
