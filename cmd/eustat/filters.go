package cmd

import (
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/internal/ui"
)

var filtersQuiet bool

// filtersCmd represents the filters command
var filtersCmd = &cobra.Command{
	Use:   "filters <dataset>",
	Short: "List the filterable dimensions and codes of a dataset",
	Long:  "Show every dimension of a dataset together with its accepted codes, as usable with the fetch command's --dim, --geo and --time flags.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFilters,
}

func runFilters(cmd *cobra.Command, args []string) error {
	datasetCode := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}

	filters, err := client.AvailableFilters(cmd.Context(), datasetCode)
	if err != nil {
		return err
	}
	meta, err := client.DimensionMetadata(cmd.Context(), datasetCode)
	if err != nil {
		return err
	}

	dims := make([]string, 0, len(filters))
	for dim := range filters {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	listUI := ui.NewListUI(cmd.OutOrStdout(), viper.GetBool("filters.quiet"))
	for _, dim := range dims {
		labels := map[string]string{}
		if d, ok := meta.Dimension(dim); ok {
			labels = d.Labels
		}
		listUI.PrintCodes(dim, filters[dim], labels)
	}
	return nil
}

func init() {
	filtersCmd.Flags().BoolVarP(&filtersQuiet, "quiet", "q", false, "Print codes only")

	viper.BindPFlag("filters.quiet", filtersCmd.Flags().Lookup("quiet"))
}
