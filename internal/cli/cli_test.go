package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config at an empty directory and returns a fresh
// project root.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return t.TempDir()
}

// =============================================================================
// Root Command Tests
// =============================================================================

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "hxc", rootCmd.Use)
	assert.Contains(t, rootCmd.Short, "hex bytes")
}

func TestRootCommandFlags(t *testing.T) {
	jsonFlag := rootCmd.PersistentFlags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)

	verboseFlag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	projectFlag := rootCmd.PersistentFlags().Lookup("project")
	require.NotNil(t, projectFlag)
	assert.Equal(t, "p", projectFlag.Shorthand)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"count", "scan", "watch", "serve", "config", "version"} {
		assert.True(t, names[want], "%s command should be registered", want)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	root := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, config.HexcountDir), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, config.HexcountDir, config.ConfigFileName+"."+config.ConfigFileExt),
		[]byte("display:\n  hex_width: 99\n"), 0644))

	_, err := loadConfig(root)
	require.Error(t, err)

	var cliErr *CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, "Configuration is invalid", cliErr.Message)
	assert.Contains(t, err.Error(), "hex_width")
}

// =============================================================================
// Error Tests
// =============================================================================

func TestCLIError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapError(cause, "Something failed", "Try again")

	assert.Equal(t, "Something failed: boom\n\nSuggestion: Try again", err.Error())
	assert.True(t, errors.Is(err, cause))

	plain := NewCLIError("Just a message", "")
	assert.Equal(t, "Just a message", plain.Error())
	assert.Nil(t, plain.Unwrap())
}

// =============================================================================
// Output Tests
// =============================================================================

func TestOutputFormatterTable(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutputFormatter(&buf, &buf)

	o.Table([]string{"FILE", "BYTES"}, [][]string{{"a.c", "3"}, {"long/name.go", "16"}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.True(t, strings.HasPrefix(lines[1], "----"))
	assert.Contains(t, lines[3], "long/name.go")
}

func TestOutputFormatterMessages(t *testing.T) {
	var out, errOut bytes.Buffer
	o := NewOutputFormatter(&out, &errOut)

	o.Success("wrote %s", "x")
	o.Warn("careful")

	assert.Equal(t, "[OK] wrote x\n", out.String())
	assert.Equal(t, "[WARN] careful\n", errOut.String())
}

// =============================================================================
// Version Tests
// =============================================================================

func TestPrintVersionText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printVersion(VersionInfo{Version: "1.2.3", Commit: "abc123", OS: "linux", Arch: "amd64"}, false, &buf))

	assert.Contains(t, buf.String(), "hexcount 1.2.3")
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "linux/amd64")
}

func TestPrintVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printVersion(currentVersion(), true, &buf))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
