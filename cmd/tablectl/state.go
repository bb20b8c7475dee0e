// Live-state snapshot commands: show and save.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect and upload live-state snapshots",
}

var flagSaveFile string

func init() {
	stateSaveCmd.Flags().StringVar(&flagSaveFile, "file", "", "JSON file with the state to upload (required)")
	stateSaveCmd.MarkFlagRequired("file")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateSaveCmd)
}

var stateShowCmd = &cobra.Command{
	Use:   "show <table-slug>",
	Short: "Print the live-state snapshot for a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		state, ok, err := svc.LoadLiveState(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("load live state: %w", err)
		}
		if !ok {
			fmt.Println("no live state saved")
			return nil
		}
		return printJSON(state)
	},
}

var stateSaveCmd = &cobra.Command{
	Use:   "save <table-slug>",
	Short: "Upload a live-state snapshot for a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := readStateFile(flagSaveFile)
		if err != nil {
			return err
		}

		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.SaveLiveState(cmd.Context(), args[0], state); err != nil {
			return fmt.Errorf("save live state: %w", err)
		}
		fmt.Printf("saved live state for %s\n", args[0])
		return nil
	},
}
