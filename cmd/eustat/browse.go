package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/internal/ui"
)

var browseQuiet bool

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse [folder]",
	Short: "Browse one level of the dataset hierarchy",
	Long:  "List the folders and datasets directly under a catalogue folder. Without an argument the root of the hierarchy is shown.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	folder := ""
	if len(args) > 0 {
		folder = args[0]
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	info, children, err := client.Browse(cmd.Context(), folder)
	if err != nil {
		return err
	}

	listUI := ui.NewListUI(cmd.OutOrStdout(), viper.GetBool("browse.quiet"))
	rows := make([]ui.DatasetRow, len(children))
	for i, child := range children {
		rows[i] = datasetRow(child.DatasetInfo)
		if child.HasChildren {
			rows[i].Title = fmt.Sprintf("%s (%d entries)", rows[i].Title, child.ChildCount)
		}
	}
	header := info.Title
	if header == "" {
		header = info.Code
	}
	listUI.PrintDatasets(header, rows)
	return nil
}

func init() {
	browseCmd.Flags().BoolVarP(&browseQuiet, "quiet", "q", false, "Print child codes only")

	viper.BindPFlag("browse.quiet", browseCmd.Flags().Lookup("quiet"))
}
