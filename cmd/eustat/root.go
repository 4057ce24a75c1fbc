package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/eraptis/eustat-cli/internal/cache"
	"github.com/eraptis/eustat-cli/internal/catalogue"
	"github.com/eraptis/eustat-cli/internal/fetcher"
	"github.com/eraptis/eustat-cli/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "eustat",
	Short: "Browse, search and fetch Eurostat statistical datasets",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		if verbose {
			w := cmd.ErrOrStderr()
			fetcher.SetLogger(w)
			cache.SetLogger(w)
			catalogue.SetLogger(w)
		}
	},

	// When invoked without a subcommand, show help (with banner) instead of
	// printing a plain usage output.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var cfgFile string
var verbose bool
var version string

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.eustat.yaml or ./config/defaults.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log internal request and cache activity to stderr")

	// Ensure `--help` (and help subcommands) show the banner consistently.
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	// Add subcommands
	rootCmd.AddCommand(searchCmd, browseCmd, describeCmd, filtersCmd, fetchCmd, cacheCmd, configCmd)
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.SetConfigType("yaml")
		viper.AddConfigPath(home)
		viper.AddConfigPath("./config")

		// Try .eustat first
		viper.SetConfigName(".eustat")
		err = viper.ReadInConfig()

		// If not found, try defaults.yaml
		notFound := &viper.ConfigFileNotFoundError{}
		if err != nil && errors.As(err, notFound) {
			viper.SetConfigName("defaults")
			err = viper.ReadInConfig()
		}

		if err != nil && !errors.As(err, notFound) {
			cobra.CheckErr(err)
		}
	}

	// Enable environment variable support (e.g., EUSTAT_CACHE_DIR)
	// Replace dots with underscores: cache.dir -> EUSTAT_CACHE_DIR
	viper.SetEnvPrefix("EUSTAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		err := viper.ReadInConfig()
		notFound := &viper.ConfigFileNotFoundError{}
		if err != nil && !errors.As(err, notFound) {
			cobra.CheckErr(err)
		}
	}

	if viper.ConfigFileUsed() != "" {
		configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, configMsg)
	}
}

const longDescription = "Browse, search and fetch Eurostat statistical datasets. Navigate the dataset catalogue, inspect dimensions, and download filtered data as tables."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	cmd.Root().Long = ui.RenderGradientBanner(ui.BannerASCII) + "\n" + longDescription
}
