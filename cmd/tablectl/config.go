// Config loading for the tablectl CLI.
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

	// Config keys.
	cfgKeyBackend    = "backend"
	cfgKeyBaseURL    = "base_url"
	cfgKeyViewsPath  = "views_path"
	cfgKeyStatesPath = "states_path"
	cfgKeyDataDir    = "data_dir"

	// Default backend: local-first.
	defaultBackend = "sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# tablectl configuration

# Backend selection: sqlite (local) or http (remote views API)
backend: sqlite

# Remote views API (http backend only)
# base_url: https://api.example.com
# views_path: table-views
# states_path: table-states

# Data directory for the sqlite backend (optional; overridable by --data-dir)
# data_dir:
`

// cliConfig is the subset of config.yaml the CLI consumes.
type cliConfig struct {
	backend    string
	baseURL    string
	viewsPath  string
	statesPath string
	dataDir    string
}

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (cliConfig, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return cliConfig{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return cliConfig{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return cliConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	return cliConfig{
		backend:    v.GetString(cfgKeyBackend),
		baseURL:    v.GetString(cfgKeyBaseURL),
		viewsPath:  v.GetString(cfgKeyViewsPath),
		statesPath: v.GetString(cfgKeyStatesPath),
		dataDir:    v.GetString(cfgKeyDataDir),
	}, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
