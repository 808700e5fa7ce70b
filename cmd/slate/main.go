// slate: clipboard history daemon.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "slate",
		Short: "Clipboard history daemon",
		Long: `slate watches the desktop clipboard and keeps a bounded, persistent
history of everything copied, annotated with the window it was copied from.

Run "slate" (or "slate run") as the daemon. The other sub-commands talk to
the running daemon over its control socket; use "slate-pick" for an
interactive rofi picker.

Config file search order (first found wins):
  path supplied via --config
  $HOME/.config/slate/slate.yaml
  /etc/slate/slate.yaml

All flags can be set via SLATE_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newPauseCmd(),
		newResumeCmd(),
		newStatusCmd(),
		newRestoreCmd(),
		newValidateConfigCmd(),
		newVersionCmd(),
	)

	// Bare invocation runs the daemon, matching the historical CLI.
	args := os.Args[1:]
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		root.SetArgs(append([]string{"run"}, args...))
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("slate %s\n", Version)
		},
	}
}
