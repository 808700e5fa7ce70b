// Package logging configures the global slog logger for the slate binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Init configures the global slog logger. Call once after flag/viper
// parsing.
//
// format is "auto", "text" or "json"; auto picks tinted output on a TTY
// and JSON otherwise. An empty level defaults to debug for interactive
// runs and info for a service.
func Init(format, level string, interactive bool) {
	w := os.Stderr

	var lvl slog.Level
	if level == "" {
		lvl = slog.LevelInfo
		if interactive {
			lvl = slog.LevelDebug
		}
	} else if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var h slog.Handler
	if useTint(format, w) {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      lvl,
			TimeFormat: "15:04:05.000",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: lvl,
		})
	}
	slog.SetDefault(slog.New(h))
}

func useTint(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "text", "tint", "human":
		return true
	case "json":
		return false
	default:
		return IsTTY(w)
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}
