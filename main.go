package main

import (
	"fmt"
	"os"
	"stampcard/internal/di"
	"stampcard/internal/models"
	"stampcard/internal/structures"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var flags structures.CliFlags

var rootCmd = &cobra.Command{
	Use:           "stampcard",
	Short:         "Loyalty stamp card",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stamp card over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cleanup, err := di.InitApp(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		return app.Run()
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the card state",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := di.InitCard(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer svc.Close()

		printSnapshot(cmd, svc.Snapshot())
		return nil
	},
}

var stampCmd = &cobra.Command{
	Use:   "stamp INDEX",
	Short: "Earn a stamp in slot INDEX",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot index %q", args[0])
		}

		svc, cleanup, err := di.InitCard(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer svc.Close()

		applied, err := svc.FillStamp(index)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Fprintf(cmd.OutOrStdout(), "Slot %d is already filled or does not exist\n", index)
		}
		printSnapshot(cmd, svc.Snapshot())
		return nil
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo TIMESTAMP",
	Short: "Undo the history entry with the given timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q", args[0])
		}

		svc, cleanup, err := di.InitCard(&flags)
		if err != nil {
			return err
		}
		defer cleanup()
		defer svc.Close()

		applied, err := svc.Undo(ts)
		if err != nil {
			return err
		}
		if !applied {
			fmt.Fprintf(cmd.OutOrStdout(), "No history entry %d\n", ts)
		}
		printSnapshot(cmd, svc.Snapshot())
		return nil
	},
}

func printSnapshot(cmd *cobra.Command, snap models.CardSnapshot) {
	out := cmd.OutOrStdout()

	var slots strings.Builder
	for _, s := range snap.Slots {
		if s.Filled {
			slots.WriteString("[*]")
		} else {
			slots.WriteString("[ ]")
		}
	}
	fmt.Fprintf(out, "%s  %d/%d\n", slots.String(), snap.Count, snap.Total)
	if snap.Complete {
		fmt.Fprintln(out, "Card complete!")
	}

	for _, h := range snap.History {
		slot := "-"
		if h.StampIndex != nil {
			slot = strconv.Itoa(*h.StampIndex)
		}
		fmt.Fprintf(out, "  %d  slot %s  %s\n", h.Timestamp, slot, h.DateStr)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "Mirror logs to stderr")

	rootCmd.AddCommand(serveCmd, showCmd, stampCmd, undoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
