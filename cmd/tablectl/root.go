// Root command for the tablectl CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tableview/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// loadedConfig holds the values read from config.yaml. Set by
// PersistentPreRunE so all subcommands can use it.
var loadedConfig cliConfig

var rootCmd = &cobra.Command{
	Use:     "tablectl",
	Short:   "tablectl manages named table views and live-state snapshots",
	Version: version,
	Long: `tablectl is the operator surface for the tableview backend. It lists,
creates, renames, shares, and deletes named views, and inspects or
uploads live-state snapshots, against either the remote views API or a
local SQLite database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		loadedConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for the sqlite backend (default: $(CWD)/.tableview-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(stateCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > TABLEVIEW_CONFIG_DIR env > default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > TABLEVIEW_DATA_DIR env > default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, loadedConfig.dataDir)
}
