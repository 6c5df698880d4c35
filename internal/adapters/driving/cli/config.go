package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Settings live in config.toml under the config directory. Command line
flags override them for a single run.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Long: `Stores one setting in config.toml. Numbers and booleans are stored as
such; ingest.resources takes a comma separated list.

Example:
  pokeelt config set api.page_size 500
  pokeelt config set ingest.resources pokemon,move,ability`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, err := currentSettings()
	if err != nil {
		return err
	}
	renderSettings(cmd.OutOrStdout(), settings)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	value := parseSettingValue(key, args[1])
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	// Each value is checked on its own; report combinations Get refuses.
	if _, err := settingsService.Get(); err != nil {
		return err
	}

	cmd.Printf("Set %s = %v\n", key, value)
	return nil
}

// parseSettingValue converts command line text into the type stored for key.
func parseSettingValue(key, raw string) any {
	if key == "ingest.resources" {
		var names []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		return names
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
