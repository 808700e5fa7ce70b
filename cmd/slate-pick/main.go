// slate-pick: pick a clipboard history entry via rofi and restore it.
//
// A thin client of the slate daemon: it fetches history over the control
// socket, presents it in a rofi dmenu, and asks the daemon to restore the
// selected entry. The daemon performs the clipboard write, so the restore
// is never re-captured as a new entry.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go.klb.dev/slate/internal/control"
	"go.klb.dev/slate/internal/history"
)

const menuLabelCharLimit = 120

func main() {
	var (
		prompt  string
		lines   int
		rofiBin string
	)

	root := &cobra.Command{
		Use:          "slate-pick",
		Short:        "Pick clipboard history via rofi",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(prompt, lines, rofiBin)
		},
	}

	root.Flags().StringVar(&prompt, "prompt", "slate", "prompt shown in rofi")
	root.Flags().IntVar(&lines, "lines", 15, "number of menu rows rofi should display")
	root.Flags().StringVar(&rofiBin, "rofi-bin", "rofi", "rofi executable to invoke")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(prompt string, lines int, rofiBin string) error {
	resp, err := control.RoundTrip(&control.Request{Command: control.CmdHistory})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errors.New(resp.Error)
	}
	if len(resp.Entries) == 0 {
		return nil
	}

	index, picked, err := promptSelection(prompt, lines, rofiBin, resp.Entries)
	if err != nil || !picked {
		return err
	}

	restore, err := control.RoundTrip(&control.Request{
		Command: control.CmdRestore,
		ID:      resp.Entries[index].ID,
	})
	if err != nil {
		return err
	}
	if !restore.OK() {
		return errors.New(restore.Error)
	}
	return nil
}

// promptSelection runs rofi in dmenu mode with one row per entry and
// returns the selected row index. picked is false when the user cancelled.
func promptSelection(prompt string, lines int, rofiBin string, entries []history.Entry) (index int, picked bool, err error) {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label(menuLabelCharLimit)
	}

	cmd := exec.Command(rofiBin,
		"-dmenu", "-i",
		"-p", prompt,
		"-l", strconv.Itoa(lines),
		"-format", "i",
	)
	cmd.Stdin = strings.NewReader(strings.Join(labels, "\n"))

	out, err := cmd.Output()
	if err != nil {
		// Exit code 1 is rofi's cancel, not a failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("launch %s: %w", rofiBin, err)
	}

	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return 0, false, nil
	}
	index, err = strconv.Atoi(trimmed)
	if err != nil || index < 0 || index >= len(entries) {
		return 0, false, fmt.Errorf("unexpected rofi selection %q", trimmed)
	}
	return index, true, nil
}
