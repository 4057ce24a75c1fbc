package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/internal/apperr"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var (
	describeDimension string
	describeQuiet     bool
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe <dataset>",
	Short: "Show catalogue metadata and dimensions of a dataset",
	Long:  "Show the catalogue entry of a dataset together with its dimension list. With --dimension the code vocabulary of that single dimension is listed instead.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	datasetCode := args[0]

	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	quiet := viper.GetBool("describe.quiet")
	listUI := ui.NewListUI(cmd.OutOrStdout(), quiet)

	meta, err := client.DimensionMetadata(ctx, datasetCode)
	if err != nil {
		return err
	}

	if dim := viper.GetString("describe.dimension"); dim != "" {
		d, ok := meta.Dimension(dim)
		if !ok {
			return apperr.InvalidParameterf("dataset %s has no dimension %q", datasetCode, dim)
		}
		listUI.PrintCodes(d.Code, d.Codes, d.Labels)
		return nil
	}

	info, err := client.DatasetInfo(ctx, datasetCode)
	if err == nil {
		listUI.PrintDatasetInfo(datasetRow(info))
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	} else if !apperr.IsNotFound(err) {
		return err
	}

	dims := make([]ui.DimensionRow, len(meta.Dimensions))
	for i, d := range meta.Dimensions {
		dims[i] = ui.DimensionRow{Code: d.Code, Label: d.Label, NCodes: len(d.Codes)}
	}
	listUI.PrintDimensions(datasetCode, dims)
	return nil
}

func init() {
	describeCmd.Flags().StringVarP(&describeDimension, "dimension", "d", "", "List the code vocabulary of one dimension")
	describeCmd.Flags().BoolVarP(&describeQuiet, "quiet", "q", false, "Print codes only")

	viper.BindPFlag("describe.dimension", describeCmd.Flags().Lookup("dimension"))
	viper.BindPFlag("describe.quiet", describeCmd.Flags().Lookup("quiet"))
}
