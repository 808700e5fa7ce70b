package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/slate/internal/capture"
	"go.klb.dev/slate/internal/clip"
	"go.klb.dev/slate/internal/config"
	"go.klb.dev/slate/internal/control"
	"go.klb.dev/slate/internal/history"
	"go.klb.dev/slate/internal/window"
)

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clipboard history daemon",
		Long: `Starts the slate daemon: watches the clipboard, records history, and
serves the control socket used by the other sub-commands and slate-pick.

Exactly one daemon runs per user session; a second invocation exits with an
"already running" error.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(_ *cobra.Command, _ []string) error { return runDaemon(v) },
	}

	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runDaemon(v *viper.Viper) error {
	setupLogging(v)

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	// Acquire the instance lock before anything else; the bound socket is
	// both the lock and the control channel.
	ln, err := control.Listen()
	if err != nil {
		if errors.Is(err, control.ErrAlreadyRunning) {
			return fmt.Errorf("%w (socket %s)", err, control.SocketPath())
		}
		return err
	}

	histPath, err := cfg.HistoryPath()
	if err != nil {
		ln.Close()
		return err
	}
	store := history.Open(history.Options{
		Path:       histPath,
		MaxEntries: cfg.History.MaxEntries,
		DedupAll:   cfg.History.Dedup == config.DedupHistory,
	})

	backend := clip.New()
	defer backend.Close()

	state := &capture.State{}

	slog.Info("slate daemon starting",
		"version", Version,
		"socket", control.SocketPath(),
		"history", histPath,
		"entries", store.Len(),
		"backend", backend.Name(),
		"window_probe", cfg.ActiveWindow.Backend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := &capture.Watcher{
		Backend:   backend,
		Store:     store,
		State:     state,
		Windows:   window.FromConfig(cfg.ActiveWindow),
		Blacklist: cfg.ActiveWindow.Blacklist,
	}
	go watcher.Run(ctx)

	srv := &control.Server{Store: store, State: state, Backend: backend}
	go srv.Serve(ln)

	<-ctx.Done()
	slog.Info("shutting down")
	// Closing the unix listener unlinks the socket, releasing the lock so
	// a restart is never blocked by this run's own artifacts.
	return ln.Close()
}
