package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the config file without extension
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension
	ConfigFileExt = "yaml"
	// HexcountDir is the name of the per-project Hexcount directory
	HexcountDir = ".hexcount"
	// EnvPrefix prefixes environment overrides, e.g. HEXCOUNT_SERVER_PORT
	EnvPrefix = "HEXCOUNT"
)

// Loader handles configuration loading and saving
type Loader struct {
	projectRoot string
	v           *viper.Viper
}

// NewLoader creates a new config loader for the given project root
func NewLoader(projectRoot string) *Loader {
	return &Loader{
		projectRoot: projectRoot,
		v:           viper.New(),
	}
}

// ConfigPath returns the full path to the project config file
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.projectRoot, HexcountDir, ConfigFileName+"."+ConfigFileExt)
}

// DirPath returns the full path to the .hexcount directory
func (l *Loader) DirPath() string {
	return filepath.Join(l.projectRoot, HexcountDir)
}

// Exists returns true if a project config file exists at the expected location
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.ConfigPath())
	return err == nil
}

// Load resolves the effective configuration. Layers are applied in order of
// increasing precedence: defaults, global config, project config, HEXCOUNT_*
// environment variables. Missing config files are not an error.
func (l *Loader) Load() (*Config, error) {
	// Create a fresh viper instance for each load to avoid stale state
	l.v = viper.New()
	l.v.SetConfigType(ConfigFileExt)
	setDefaults(l.v, Default())

	for _, path := range []string{GlobalConfigPath(), l.ConfigPath()} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		l.v.SetConfigFile(path)
		if err := l.v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the project config file.
// It creates the .hexcount directory if it doesn't exist.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.DirPath(), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", HexcountDir, err)
	}

	v := viper.New()
	v.SetConfigType(ConfigFileExt)
	v.Set("version", cfg.Version)
	v.Set("display", cfg.Display)
	v.Set("watcher", cfg.Watcher)
	v.Set("server", cfg.Server)
	v.Set("scan", cfg.Scan)

	if err := v.WriteConfigAs(l.ConfigPath()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init writes a default config file into the project.
// It fails if a project config already exists.
func (l *Loader) Init() (*Config, error) {
	if l.Exists() {
		return nil, fmt.Errorf("config already exists at %s", l.ConfigPath())
	}

	cfg := Default()
	if err := l.Save(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
