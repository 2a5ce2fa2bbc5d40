package cmd

import (
	"fmt"
	"strconv"

	"github.com/neptaco/unilog/pkg/settings"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and change the logger settings file",
	Long: `Read and change LogConfig.txt, the key=value settings file of the
debug logger.

Known keys:
  IsFullUnityLogs    include the call path in every record
  ToKeepAllLogFiles  one timestamped file per session instead of a single file
  ActivateLogger     start the logger active

Examples:
  unilog config list --company Acme --product Rocket
  unilog config set ActivateLogger false --data-dir ./data`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the logger settings, writing defaults for missing keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings file with default values",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configInitCmd)
}

func runConfigList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if _, err := store.LoadLoggerSettings(); err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	lines, err := store.Lines()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	ui.Muted("# %s", store.Path())
	for _, line := range lines {
		ui.Print("%s", line)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !settings.IsKnownKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	value, err := store.ReadBool(key, settings.DefaultLoggerSettings().Get(key))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}

	ui.Print("%t", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !settings.IsKnownKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid value %q: expected true or false", args[1])
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	if err := store.WriteBool(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	ui.Success("%s=%t", key, value)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	err = ui.WithSpinnerNoResult("Writing default settings...", func() error {
		_, err := store.LoadLoggerSettings()
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}

	ui.Success("Settings file ready: %s", store.Path())
	return nil
}
