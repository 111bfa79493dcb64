// Config loading for the daybook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir      = "data_dir"
	cfgKeyUser         = "user"
	cfgKeyStreakAnchor = "streak_anchor"
	cfgKeyLogFile      = "log_file"
	cfgKeyLogLevel     = "log_level"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Daybook CLI configuration

# Acting username for all commands (overridable by --user)
# user:

# Data directory holding daybook.db (optional; overridable by --data-dir)
# data_dir:

# Current-streak anchor policy: today_or_yesterday (default) or today
# streak_anchor:

# Optional log file; when unset, logs go to stderr only
# log_file:
# log_level: info
`

// cliConfig holds the config.yaml values the CLI reads.
type cliConfig struct {
	DataDir      string
	User         string
	StreakAnchor string
	LogFile      string
	LogLevel     string
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*cliConfig, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &cliConfig{
		DataDir:      v.GetString(cfgKeyDataDir),
		User:         v.GetString(cfgKeyUser),
		StreakAnchor: v.GetString(cfgKeyStreakAnchor),
		LogFile:      v.GetString(cfgKeyLogFile),
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
