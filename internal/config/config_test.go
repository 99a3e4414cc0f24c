package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolateGlobal points the global config lookup at an empty temp dir.
func isolateGlobal(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeProjectConfig(t *testing.T, projectRoot, content string) {
	t.Helper()
	dir := filepath.Join(projectRoot, HexcountDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
}

// ============================================================================
// Config struct tests
// ============================================================================

func TestWatcherConfig_DebounceDuration(t *testing.T) {
	tests := []struct {
		name       string
		debounceMs int
		expected   time.Duration
	}{
		{name: "150ms debounce", debounceMs: 150, expected: 150 * time.Millisecond},
		{name: "1000ms debounce", debounceMs: 1000, expected: time.Second},
		{name: "zero debounce", debounceMs: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WatcherConfig{DebounceMs: tt.debounceMs}
			assert.Equal(t, tt.expected, w.DebounceDuration())
		})
	}
}

func TestServerConfig_AddressAndTimeout(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 7430, TimeoutMs: 2500}
	assert.Equal(t, "127.0.0.1:7430", s.Address())
	assert.Equal(t, 2500*time.Millisecond, s.Timeout())

	s.Port = 0
	assert.Equal(t, "127.0.0.1:0", s.Address())
}

// ============================================================================
// Defaults and validation
// ============================================================================

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, ValidateOrError(Default()))
}

func TestDefault_Display(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Bytes", cfg.Display.Label)
	assert.Equal(t, 2, cfg.Display.HexWidth)
	assert.False(t, cfg.Display.Uppercase)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Version: 0,
		Display: DisplayConfig{HexWidth: 0},
		Watcher: WatcherConfig{DebounceMs: -1, MaxFileSize: 0},
		Server:  ServerConfig{Host: "", Port: 70000, LogLevel: "loud", MaxTextBytes: 0, TimeoutMs: 0},
		Scan:    ScanConfig{IncludePatterns: nil, MinBytes: -1, Concurrency: 0, MaxFileSize: 0},
	}

	errs := Validate(cfg)
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}

	assert.ElementsMatch(t, []string{
		"version",
		"display.hex_width",
		"watcher.debounce_ms",
		"watcher.max_file_size",
		"server.host",
		"server.port",
		"server.log_level",
		"server.max_text_bytes",
		"server.timeout_ms",
		"scan.include_patterns",
		"scan.min_bytes",
		"scan.concurrency",
		"scan.max_file_size",
	}, fields)
	assert.Contains(t, errs.Error(), "configuration validation failed")
}

func TestValidate_BadGlob(t *testing.T) {
	cfg := Default()
	cfg.Scan.IncludePatterns = []string{"**/*.go", "[abc"}

	errs := Validate(cfg)
	require.Len(t, errs, 1)
	assert.Equal(t, "scan.include_patterns[1]", errs[0].Field)
}

func TestValidationErrors_Empty(t *testing.T) {
	var errs ValidationErrors
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "", errs.Error())
	assert.NoError(t, ValidateOrError(Default()))
}

// ============================================================================
// Loader tests
// ============================================================================

func TestLoader_Paths(t *testing.T) {
	loader := NewLoader("/project")
	assert.Equal(t, filepath.Join("/project", ".hexcount", "config.yaml"), loader.ConfigPath())
	assert.Equal(t, filepath.Join("/project", ".hexcount"), loader.DirPath())
}

func TestLoader_LoadWithoutFilesReturnsDefaults(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()

	cfg, err := NewLoader(projectRoot).Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoader_ProjectOverridesDefaults(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()
	writeProjectConfig(t, projectRoot, `
display:
  label: Size
  uppercase: true
server:
  port: 9001
`)

	cfg, err := NewLoader(projectRoot).Load()
	require.NoError(t, err)
	assert.Equal(t, "Size", cfg.Display.Label)
	assert.True(t, cfg.Display.Uppercase)
	assert.Equal(t, 2, cfg.Display.HexWidth, "unset keys keep their defaults")
	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
}

func TestLoader_ProjectOverridesGlobal(t *testing.T) {
	globalDir := isolateGlobal(t)
	require.NoError(t, os.MkdirAll(filepath.Join(globalDir, "hexcount"), 0755))
	require.NoError(t, os.WriteFile(GlobalConfigPath(), []byte(`
display:
  label: Global
  hex_width: 4
`), 0644))

	projectRoot := t.TempDir()
	writeProjectConfig(t, projectRoot, `
display:
  label: Project
`)

	cfg, err := NewLoader(projectRoot).Load()
	require.NoError(t, err)
	assert.Equal(t, "Project", cfg.Display.Label)
	assert.Equal(t, 4, cfg.Display.HexWidth)
}

func TestLoader_EnvironmentOverridesFiles(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()
	writeProjectConfig(t, projectRoot, "server:\n  port: 9001\n")

	t.Setenv("HEXCOUNT_SERVER_PORT", "9100")
	t.Setenv("HEXCOUNT_SCAN_MIN_BYTES", "8")

	cfg, err := NewLoader(projectRoot).Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Scan.MinBytes)
}

func TestLoader_InvalidYAML(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()
	writeProjectConfig(t, projectRoot, "display: [unclosed")

	_, err := NewLoader(projectRoot).Load()
	assert.Error(t, err)
}

func TestLoader_InitWritesDefaults(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()
	loader := NewLoader(projectRoot)

	assert.False(t, loader.Exists())
	cfg, err := loader.Init()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, loader.Exists())

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.Display, loaded.Display)
	assert.Equal(t, cfg.Server, loaded.Server)
	assert.Equal(t, cfg.Scan.IncludePatterns, loaded.Scan.IncludePatterns)
}

func TestLoader_InitFailsWhenConfigExists(t *testing.T) {
	isolateGlobal(t)
	projectRoot := t.TempDir()
	writeProjectConfig(t, projectRoot, "version: 1\n")

	_, err := NewLoader(projectRoot).Init()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

// ============================================================================
// Global config
// ============================================================================

func TestGlobalConfigPath_RespectsXDG(t *testing.T) {
	dir := isolateGlobal(t)
	assert.Equal(t, filepath.Join(dir, "hexcount", "config.yaml"), GlobalConfigPath())
}

func TestSaveGlobalConfig(t *testing.T) {
	isolateGlobal(t)
	cfg := Default()
	cfg.Display.Label = "Saved"

	require.NoError(t, SaveGlobalConfig(cfg))

	data, err := os.ReadFile(GlobalConfigPath())
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, "Saved", decoded.Display.Label)
	assert.Equal(t, cfg.Scan.ExcludePatterns, decoded.Scan.ExcludePatterns)
}
