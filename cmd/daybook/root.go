// Root command for the daybook CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/internal/paths"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagUser      string
	flagJSON      bool
)

// config holds the loaded config.yaml values. Set by PersistentPreRunE so
// all subcommands can read it.
var config *cliConfig

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "Daybook is a local-first daily journal",
	Version: version,
	Long: `Daybook keeps a daily journal in a single local SQLite file:
one entry per day, tagged and mood-rated, with full-text search,
streak tracking, and writing statistics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		config, err = loadConfig(configDir)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding the journal database (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "acting username (default: config.yaml user)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(entryCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(moodCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingCmd)
}

// resolveConfigDir returns the configuration directory following the
// precedence: --config-dir flag > DAYBOOK_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > DAYBOOK_DATA_DIR env > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, config.DataDir)
}
