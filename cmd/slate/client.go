package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/slate/internal/control"
)

const labelCharLimit = 120

func newHistoryCmd() *cobra.Command {
	var (
		jsonOut bool
		images  bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print clipboard history from the running daemon",
		Long: `Lists captured entries, most recent first.

Image payloads are omitted unless --images is given, so responses stay cheap;
entries still report their byte size.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := control.RoundTrip(&control.Request{
				Command: control.CmdHistory,
				Images:  images,
				Limit:   limit,
			})
			if err != nil {
				return err
			}
			if !resp.OK() {
				return errors.New(resp.Error)
			}

			if jsonOut {
				enc, err := json.MarshalIndent(resp.Entries, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(enc))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 1, 0, 2, ' ', 0)
			for _, e := range resp.Entries {
				_, _ = fmt.Fprintf(w, "%d\t%s\n", e.ID, e.Label(labelCharLimit))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit history as JSON")
	cmd.Flags().BoolVar(&images, "images", false, "include image payload bytes")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum entries to list (0 = all)")

	return cmd
}

func newPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause-capture",
		Short: "Stop recording new clipboard changes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return simpleCommand(control.CmdPause, "capture paused")
		},
	}
}

func newResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume-capture",
		Short: "Resume recording clipboard changes",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return simpleCommand(control.CmdResume, "capture resumed")
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture-status",
		Short: "Print whether capture is running or paused",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			resp, err := control.RoundTrip(&control.Request{Command: control.CmdStatus})
			if err != nil {
				return err
			}
			if !resp.OK() {
				return errors.New(resp.Error)
			}
			fmt.Println(resp.State)
			return nil
		},
	}
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Write a history entry back to the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}
			resp, err := control.RoundTrip(&control.Request{Command: control.CmdRestore, ID: id})
			if err != nil {
				return err
			}
			if !resp.OK() {
				return errors.New(resp.Error)
			}
			return nil
		},
	}
}

func newValidateConfigCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "validate-config",
		Short:   "Load and validate the config file, then exit",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(_ *cobra.Command, _ []string) error {
			if _, err := loadConfig(v); err != nil {
				return err
			}
			used := v.ConfigFileUsed()
			if used == "" {
				used = "(defaults, no config file found)"
			}
			fmt.Printf("config valid: %s\n", used)
			return nil
		},
	}

	addConfigFlag(cmd)

	return cmd
}

func simpleCommand(cmd control.Command, ack string) error {
	resp, err := control.RoundTrip(&control.Request{Command: cmd})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errors.New(resp.Error)
	}
	fmt.Println(ack)
	return nil
}
