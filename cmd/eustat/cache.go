package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/internal/apperr"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var cacheClearYes bool

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local response cache",
}

// cacheDirCmd prints the cache location
var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cacheDirInUse())
		return nil
	},
}

// cacheClearCmd drops all cached responses
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached responses and catalogue data",
	RunE:  runCacheClear,
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	if !viper.GetBool("cache.clear-yes") {
		var confirm bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Clear cache?").
					Description(fmt.Sprintf("Remove all cached responses under %s?", cacheDirInUse())).
					Value(&confirm).
					Affirmative("Yes").
					Negative("No"),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirm {
			return apperr.ErrCancelled
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.ClearCache(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Cache cleared\n", ui.GetCheckMark())
	return nil
}

func init() {
	cacheClearCmd.Flags().BoolVarP(&cacheClearYes, "yes", "y", false, "Skip the confirmation prompt")

	viper.BindPFlag("cache.clear-yes", cacheClearCmd.Flags().Lookup("yes"))

	cacheCmd.AddCommand(cacheDirCmd, cacheClearCmd)
}
