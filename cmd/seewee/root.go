// Root command for the seewee CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/paths"
	"github.com/seewee/seewee/pkg/seewee"
)

// Exit codes: 1 for user errors (bad ids, unknown names), 2 for system
// errors (storage, config).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

var rootCmd = &cobra.Command{
	Use:     "seewee",
	Short:   "Seewee is a local-first CV variant manager",
	Version: seewee.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.seewee)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.seewee-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(variantCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(profileCmd)
}

// resolveDataDir returns the data directory following the precedence
// chain: --data-dir flag > config.yaml data_dir > SEEWEE_DATA_DIR env >
// default $(CWD)/.seewee-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > SEEWEE_CONFIG_DIR env >
// DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}
