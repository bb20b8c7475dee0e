// Init command bootstraps the config directory and the sqlite database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration and local storage",
	Long: `Init creates the configuration directory with a default config.yaml
(done automatically by every command) and, for the sqlite backend,
creates the data directory and database file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default config.yaml were created by
		// PersistentPreRunE; attaching creates the data dir and schema.
		_, cleanup, err := newService()
		if err != nil {
			return err
		}
		if err := cleanup(); err != nil {
			return err
		}
		fmt.Println("tableview storage initialized")
		return nil
	},
}
