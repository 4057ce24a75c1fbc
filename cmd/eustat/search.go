package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eraptis/eustat-cli/internal/catalogue"
	"github.com/eraptis/eustat-cli/internal/ui"
)

var (
	searchSince       string
	searchMax         int
	searchInteractive bool
	searchQuiet       bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Eurostat dataset catalogue",
	Long:  "Search datasets by title or code. Results are ranked by relevance. Use --interactive for a live selector, --since to keep only recently updated datasets.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = strings.TrimSpace(args[0])
	}

	interactive := viper.GetBool("search.interactive")
	if !interactive && query == "" {
		return fmt.Errorf("a query argument is required unless --interactive is set")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	opts := catalogue.SearchOptions{
		UpdatedSince: viper.GetString("search.since"),
		MaxResults:   viper.GetInt("search.max"),
	}

	if interactive {
		codes, err := ui.RunDatasetSelector(func(q string) ([]ui.DatasetEntry, error) {
			results, err := client.Search(context.Background(), q, opts)
			if err != nil {
				return nil, err
			}
			entries := make([]ui.DatasetEntry, len(results))
			for i, r := range results {
				entries[i] = ui.DatasetEntry{
					Code:       r.Code,
					Title:      r.Title,
					LastUpdate: formatDate(r.LastUpdate),
					Values:     r.ValuesCount,
				}
			}
			return entries, nil
		}, query)
		if err != nil {
			return err
		}
		for _, code := range codes {
			fmt.Fprintln(cmd.OutOrStdout(), code)
		}
		return nil
	}

	results, err := client.Search(ctx, query, opts)
	if err != nil {
		return err
	}

	listUI := ui.NewListUI(cmd.OutOrStdout(), viper.GetBool("search.quiet"))
	rows := make([]ui.DatasetRow, len(results))
	for i, r := range results {
		rows[i] = datasetRow(r)
	}
	listUI.PrintDatasets(fmt.Sprintf("%d result(s) for %q", len(results), query), rows)
	return nil
}

func datasetRow(info catalogue.DatasetInfo) ui.DatasetRow {
	return ui.DatasetRow{
		Code:       info.Code,
		Title:      info.Title,
		Type:       info.Type,
		LastUpdate: formatDate(info.LastUpdate),
		DataStart:  info.DataStart,
		DataEnd:    info.DataEnd,
		Values:     info.ValuesCount,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func init() {
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Only datasets updated on or after this date (YYYY-MM-DD)")
	searchCmd.Flags().IntVar(&searchMax, "max", 0, "Maximum number of results (default 50)")
	searchCmd.Flags().BoolVar(&searchInteractive, "interactive", false, "Interactive dataset selector")
	searchCmd.Flags().BoolVarP(&searchQuiet, "quiet", "q", false, "Print matching dataset codes only")

	viper.BindPFlag("search.since", searchCmd.Flags().Lookup("since"))
	viper.BindPFlag("search.max", searchCmd.Flags().Lookup("max"))
	viper.BindPFlag("search.interactive", searchCmd.Flags().Lookup("interactive"))
	viper.BindPFlag("search.quiet", searchCmd.Flags().Lookup("quiet"))
}
