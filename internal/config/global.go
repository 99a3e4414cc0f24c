package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir returns the user-level Hexcount configuration directory.
// On Unix: ~/.config/hexcount (or XDG_CONFIG_HOME/hexcount)
// On Windows: %APPDATA%\hexcount
func GlobalConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hexcount")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "hexcount")
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".config", "hexcount")
}

// GlobalConfigPath returns the full path to the global config file.
func GlobalConfigPath() string {
	dir := GlobalConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// SaveGlobalConfig saves the configuration to the global config file.
// Creates the directory if it doesn't exist.
func SaveGlobalConfig(cfg *Config) error {
	dir := GlobalConfigDir()
	if dir == "" {
		return fmt.Errorf("cannot determine global config directory")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create global config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(GlobalConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write global config: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
