package config

import "github.com/spf13/viper"

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Version: 1,
		Display: DisplayConfig{
			Label:     "Bytes",
			HexWidth:  2,
			Uppercase: false,
		},
		Watcher: WatcherConfig{
			DebounceMs:  150,
			MaxFileSize: 1048576, // 1MB
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         7430,
			LogLevel:     "info",
			MaxTextBytes: 1048576,
			TimeoutMs:    10000,
		},
		Scan: ScanConfig{
			IncludePatterns: []string{
				"**/*.go",
				"**/*.c",
				"**/*.h",
				"**/*.java",
				"**/*.cs",
				"**/*.py",
				"**/*.js",
				"**/*.ts",
				"**/*.tsx",
			},
			ExcludePatterns: []string{
				"**/node_modules/**",
				"**/vendor/**",
				"**/bin/**",
				"**/obj/**",
				"**/__pycache__/**",
				"**/.git/**",
				"**/.hexcount/**",
			},
			MinBytes:    1,
			Concurrency: 4,
			MaxFileSize: 1048576,
		},
	}
}

// setDefaults registers every leaf key so environment overrides resolve.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("version", cfg.Version)

	v.SetDefault("display.label", cfg.Display.Label)
	v.SetDefault("display.hex_width", cfg.Display.HexWidth)
	v.SetDefault("display.uppercase", cfg.Display.Uppercase)

	v.SetDefault("watcher.debounce_ms", cfg.Watcher.DebounceMs)
	v.SetDefault("watcher.max_file_size", cfg.Watcher.MaxFileSize)

	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.log_level", cfg.Server.LogLevel)
	v.SetDefault("server.max_text_bytes", cfg.Server.MaxTextBytes)
	v.SetDefault("server.timeout_ms", cfg.Server.TimeoutMs)

	v.SetDefault("scan.include_patterns", cfg.Scan.IncludePatterns)
	v.SetDefault("scan.exclude_patterns", cfg.Scan.ExcludePatterns)
	v.SetDefault("scan.min_bytes", cfg.Scan.MinBytes)
	v.SetDefault("scan.concurrency", cfg.Scan.Concurrency)
	v.SetDefault("scan.max_file_size", cfg.Scan.MaxFileSize)
}

