package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/eraptis/eustat-cli/internal/ui"
)

var configInitForce bool

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the eustat configuration file",
}

// configDefaults is the document written by config init.
type configDefaults struct {
	API struct {
		BaseURL string `yaml:"base-url"`
		Timeout int    `yaml:"timeout"`
	} `yaml:"api"`
	Cache struct {
		Disabled bool   `yaml:"disabled"`
		Dir      string `yaml:"dir"`
		TTLHours int    `yaml:"ttl-hours"`
	} `yaml:"cache"`
}

// configInitCmd writes a starter configuration file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file to $HOME/.eustat.yaml",
	RunE:  runConfigInit,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".eustat.yaml")

	if _, err := os.Stat(path); err == nil && !viper.GetBool("config.init-force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	var defaults configDefaults
	defaults.API.BaseURL = ""
	defaults.API.Timeout = 30
	defaults.Cache.Disabled = false
	defaults.Cache.Dir = defaultCacheDir()
	defaults.Cache.TTLHours = 24

	data, err := yaml.Marshal(defaults)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.GetCheckMark(), ui.Highlight.Render(path))
	return nil
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.FormatKeyValue("Config file", viper.ConfigFileUsed()))
		fmt.Fprintln(out, ui.FormatKeyValue("API base URL", viper.GetString("api.base-url")))
		fmt.Fprintln(out, ui.FormatKeyValue("API timeout", fmt.Sprintf("%ds", viper.GetInt("api.timeout"))))
		fmt.Fprintln(out, ui.FormatKeyValue("Cache disabled", fmt.Sprintf("%t", viper.GetBool("cache.disabled"))))
		fmt.Fprintln(out, ui.FormatKeyValue("Cache dir", cacheDirInUse()))
		fmt.Fprintln(out, ui.FormatKeyValue("Cache TTL", fmt.Sprintf("%dh", viper.GetInt("cache.ttl-hours"))))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	viper.BindPFlag("config.init-force", configInitCmd.Flags().Lookup("force"))

	configCmd.AddCommand(configInitCmd, configShowCmd)
}
