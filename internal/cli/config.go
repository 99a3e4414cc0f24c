package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/spf13/cobra"
)

var configInitGlobal bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long: `Show the effective configuration or write a default config file.

Settings are layered: built-in defaults, the global config file, the
project's .hexcount/config.yaml, then HEXCOUNT_* environment variables
(e.g. HEXCOUNT_SERVER_PORT=8080).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(GetProjectRoot(), IsJSONOutput(), cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(GetProjectRoot(), IsJSONOutput(), cmd.OutOrStdout())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to .hexcount/config.yaml in the project,
or to the global config file with --global. Existing files are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(GetProjectRoot(), configInitGlobal, cmd.OutOrStdout())
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitGlobal, "global", false, "Write the global config file instead of the project one")
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(root string, jsonOut bool, out io.Writer) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	if jsonOut {
		return NewOutputFormatter(out, os.Stderr).JSON(cfg)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func runConfigInit(root string, global bool, out io.Writer) error {
	o := NewOutputFormatter(out, os.Stderr)

	if global {
		path := config.GlobalConfigPath()
		if _, err := os.Stat(path); err == nil {
			return ErrConfigExists(path)
		}
		if err := config.SaveGlobalConfig(config.Default()); err != nil {
			return WrapError(err, "Failed to write global config", "Check that the config directory is writable")
		}
		o.Success("Wrote %s", path)
		return nil
	}

	loader := config.NewLoader(root)
	if loader.Exists() {
		return ErrConfigExists(loader.ConfigPath())
	}
	if _, err := loader.Init(); err != nil {
		return WrapError(err, "Failed to write config", fmt.Sprintf("Check that %s is writable", root))
	}
	o.Success("Wrote %s", loader.ConfigPath())
	return nil
}
