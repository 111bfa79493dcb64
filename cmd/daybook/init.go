// Init command creates the journal database and reports repairs.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietloom/daybook/internal/logging"
	"github.com/quietloom/daybook/internal/sqlite"
	"github.com/quietloom/daybook/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the journal database",
	Long: `Init creates the journal database file if needed, verifies its
schema against the expected shape, and repairs known defects from older
versions. Running init on a healthy journal is a no-op.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	log, err := logging.New(logging.Options{Level: config.LogLevel, Path: config.LogFile})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	store := sqlite.NewStore(log)
	report, err := store.Open(types.Config{
		DataDir:      dataDir,
		StreakAnchor: config.StreakAnchor,
	})
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer store.Close()

	if flagJSON {
		return printJSON(report)
	}

	if !report.Changed() {
		fmt.Println("Journal is healthy, nothing to do")
		return nil
	}
	for _, a := range report.Actions {
		suffix := ""
		if a.Lossy {
			suffix = " (lossy)"
		}
		fmt.Printf("%s: %s -> %s%s\n", a.Table, a.Defect, a.Outcome, suffix)
	}
	if report.Degraded() {
		fmt.Println("Journal opened in degraded mode; see log for details")
	}
	return nil
}
