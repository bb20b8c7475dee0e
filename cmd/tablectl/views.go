// View management commands: list, create, rename, share, delete.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "Manage named table views",
}

var (
	flagShared    bool
	flagStateFile string
)

func init() {
	viewsCreateCmd.Flags().BoolVar(&flagShared, "shared", false, "create the view as shared")
	viewsCreateCmd.Flags().StringVar(&flagStateFile, "state-file", "", "JSON file with the view state (default: empty state)")

	viewsCmd.AddCommand(viewsListCmd)
	viewsCmd.AddCommand(viewsCreateCmd)
	viewsCmd.AddCommand(viewsRenameCmd)
	viewsCmd.AddCommand(viewsShareCmd)
	viewsCmd.AddCommand(viewsDeleteCmd)
}

var viewsListCmd = &cobra.Command{
	Use:   "list <table-slug>",
	Short: "List the named views for a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		list, err := svc.ListViews(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("list views: %w", err)
		}
		if flagJSON {
			return printJSON(list)
		}
		if len(list) == 0 {
			fmt.Println("no views")
			return nil
		}
		for _, v := range list {
			shared := ""
			if v.IsShared {
				shared = " (shared)"
			}
			fmt.Printf("%s  %s%s\n", v.ID, v.Name, shared)
		}
		return nil
	},
}

var viewsCreateCmd = &cobra.Command{
	Use:   "create <table-slug> <name>",
	Short: "Create a named view",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		state := types.EmptyTableViewState()
		if flagStateFile != "" {
			var err error
			if state, err = readStateFile(flagStateFile); err != nil {
				return err
			}
		}

		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		created, err := svc.CreateView(cmd.Context(), types.NewView{
			Name:      args[1],
			TableSlug: args[0],
			State:     state,
			IsShared:  flagShared,
		})
		if err != nil {
			return fmt.Errorf("create view: %w", err)
		}
		if flagJSON {
			return printJSON(created)
		}
		fmt.Printf("created view %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var viewsRenameCmd = &cobra.Command{
	Use:   "rename <view-id> <new-name>",
	Short: "Rename a named view",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		name := args[1]
		updated, err := svc.UpdateView(cmd.Context(), args[0], types.ViewPatch{Name: &name})
		if err != nil {
			return fmt.Errorf("rename view: %w", err)
		}
		if flagJSON {
			return printJSON(updated)
		}
		fmt.Printf("renamed view %s to %s\n", updated.ID, updated.Name)
		return nil
	},
}

var viewsShareCmd = &cobra.Command{
	Use:   "share <view-id> <true|false>",
	Short: "Set a view's shared flag",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		shared := args[1] == "true"
		if args[1] != "true" && args[1] != "false" {
			return fmt.Errorf("expected true or false, got %q", args[1])
		}

		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		updated, err := svc.UpdateView(cmd.Context(), args[0], types.ViewPatch{IsShared: &shared})
		if err != nil {
			return fmt.Errorf("share view: %w", err)
		}
		if flagJSON {
			return printJSON(updated)
		}
		fmt.Printf("view %s shared=%v\n", updated.ID, updated.IsShared)
		return nil
	},
}

var viewsDeleteCmd = &cobra.Command{
	Use:   "delete <view-id>",
	Short: "Delete a named view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := newService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.DeleteView(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete view: %w", err)
		}
		fmt.Printf("deleted view %s\n", args[0])
		return nil
	},
}
