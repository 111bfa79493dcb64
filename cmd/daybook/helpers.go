// Shared helpers for daybook CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quietloom/daybook/internal/logging"
	"github.com/quietloom/daybook/internal/sqlite"
	"github.com/quietloom/daybook/pkg/types"
)

// openStore resolves the data directory, builds the logger, and opens the
// journal store. The caller must defer store.Close(). Repair actions from
// the open pass are logged by the store itself.
func openStore() (*sqlite.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	log, err := logging.New(logging.Options{
		Level: config.LogLevel,
		Path:  config.LogFile,
	})
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	store := sqlite.NewStore(log)
	if _, err := store.Open(types.Config{
		DataDir:      dataDir,
		StreakAnchor: config.StreakAnchor,
	}); err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

// currentUser resolves the acting user from --user or config.yaml.
func currentUser(store *sqlite.Store) (*types.User, error) {
	username := flagUser
	if username == "" {
		username = config.User
	}
	if username == "" {
		return nil, fmt.Errorf("no acting user: pass --user or set user in config.yaml")
	}
	u, err := store.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return u, nil
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseDayFlag parses a YYYY-MM-DD flag value; empty means today.
func parseDayFlag(value string) (time.Time, error) {
	if value == "" {
		return types.Day(time.Now()), nil
	}
	d, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return d, nil
}
