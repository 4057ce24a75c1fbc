package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/eraptis/eustat-cli/internal/filter"
	"github.com/eraptis/eustat-cli/internal/ui"
	"github.com/eraptis/eustat-cli/pkg/eustat"
)

var (
	fetchGeo         []string
	fetchGeoLevel    string
	fetchTime        []string
	fetchLast        int
	fetchSincePeriod string
	fetchUntilPeriod string
	fetchDims        []string
	fetchOutput      string
	fetchFormat      string
	fetchLabels      bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch <dataset>",
	Short: "Fetch a dataset as tabular observations",
	Long:  "Download a dataset and print one row per observation. Dimensions can be restricted with --geo, --geo-level, --time, --last, --since-period, --until-period and repeated --dim name=code,code flags. Output formats: table, csv, yaml, json (raw response).",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	datasetCode := args[0]

	format := strings.ToLower(strings.TrimSpace(viper.GetString("fetch.format")))
	if format == "" {
		format = "table"
	}
	switch format {
	case "table", "csv", "yaml", "json":
		// ok
	default:
		return fmt.Errorf("invalid --format %q (expected table|csv|yaml|json)", format)
	}

	opts, err := fetchOptions(cmd)
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	out := cmd.OutOrStdout()
	if path := viper.GetString("fetch.output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if format == "json" {
		body, err := client.RawData(ctx, datasetCode, opts)
		if err != nil {
			return err
		}
		_, err = out.Write(body)
		return err
	}

	table, err := client.Rows(ctx, datasetCode, opts)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return writeCSV(out, table)
	case "yaml":
		return writeYAML(out, table)
	default:
		return writeTable(out, table)
	}
}

// fetchOptions assembles the filter options from the effective flag values.
func fetchOptions(cmd *cobra.Command) (filter.Options, error) {
	opts := filter.Options{
		Geo:             viper.GetStringSlice("fetch.geo"),
		GeoLevel:        viper.GetString("fetch.geo-level"),
		Time:            viper.GetStringSlice("fetch.time"),
		SinceTimePeriod: viper.GetString("fetch.since-period"),
		UntilTimePeriod: viper.GetString("fetch.until-period"),
	}
	if cmd.Flags().Changed("last") {
		opts.LastTimePeriod = viper.GetInt("fetch.last")
	}

	dimFlags := viper.GetStringSlice("fetch.dim")
	if len(dimFlags) > 0 {
		opts.Dims = make(map[string][]string, len(dimFlags))
		for _, pair := range dimFlags {
			name, codes, ok := strings.Cut(pair, "=")
			if !ok || name == "" || codes == "" {
				return opts, fmt.Errorf("invalid --dim %q (expected name=code or name=code1,code2)", pair)
			}
			opts.Dims[name] = append(opts.Dims[name], strings.Split(codes, ",")...)
		}
	}
	return opts, nil
}

func tableRows(table *eustat.Table, withLabels bool) ([]string, [][]string) {
	headers := make([]string, 0, len(table.Dimensions)+2)
	headers = append(headers, table.Dimensions...)
	headers = append(headers, "value", "status")

	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		record := make([]string, 0, len(headers))
		for _, dim := range table.Dimensions {
			cell := row.Dims[dim]
			if withLabels {
				if label, ok := row.Labels[dim]; ok && label != "" {
					cell = label
				}
			}
			record = append(record, cell)
		}
		value := ""
		if row.Value != nil {
			value = strconv.FormatFloat(*row.Value, 'g', -1, 64)
		}
		record = append(record, value, row.Status)
		rows[i] = record
	}
	return headers, rows
}

func writeTable(w io.Writer, table *eustat.Table) error {
	if table.Label != "" {
		fmt.Fprintln(w, ui.Title.Render(table.Label))
	}
	headers, rows := tableRows(table, viper.GetBool("fetch.labels"))
	fmt.Fprint(w, ui.RenderTable(headers, rows))
	fmt.Fprintln(w, ui.Dim.Render(fmt.Sprintf("%d observation(s)", len(rows))))
	return nil
}

func writeCSV(w io.Writer, table *eustat.Table) error {
	headers, rows := tableRows(table, viper.GetBool("fetch.labels"))
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// yamlObservation is the serialized row shape for YAML output.
type yamlObservation struct {
	Dims   map[string]string `yaml:"dims"`
	Labels map[string]string `yaml:"labels,omitempty"`
	Value  *float64          `yaml:"value"`
	Status string            `yaml:"status,omitempty"`
}

type yamlDocument struct {
	Dataset      string            `yaml:"dataset"`
	Label        string            `yaml:"label,omitempty"`
	Updated      string            `yaml:"updated,omitempty"`
	Dimensions   []string          `yaml:"dimensions"`
	Observations []yamlObservation `yaml:"observations"`
}

func writeYAML(w io.Writer, table *eustat.Table) error {
	doc := yamlDocument{
		Dataset:    table.DatasetCode,
		Label:      table.Label,
		Updated:    table.Updated,
		Dimensions: table.Dimensions,
	}
	withLabels := viper.GetBool("fetch.labels")
	for _, row := range table.Rows {
		obs := yamlObservation{
			Dims:   row.Dims,
			Value:  row.Value,
			Status: row.Status,
		}
		if withLabels {
			obs.Labels = row.Labels
		}
		doc.Observations = append(doc.Observations, obs)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	fetchCmd.Flags().StringSliceVar(&fetchGeo, "geo", []string{}, "Geo code(s) to keep (e.g., DE or SE,FI) - can be repeated")
	fetchCmd.Flags().StringVar(&fetchGeoLevel, "geo-level", "", "Geo aggregation level: country|nuts1|nuts2|nuts3|city|aggregate")
	fetchCmd.Flags().StringSliceVar(&fetchTime, "time", []string{}, "Exact time period(s) to keep (e.g., 2022 or 2020,2021)")
	fetchCmd.Flags().IntVar(&fetchLast, "last", 0, "Keep only the N most recent time periods")
	fetchCmd.Flags().StringVar(&fetchSincePeriod, "since-period", "", "Keep time periods from this one onward (inclusive)")
	fetchCmd.Flags().StringVar(&fetchUntilPeriod, "until-period", "", "Keep time periods up to this one (inclusive)")
	fetchCmd.Flags().StringArrayVar(&fetchDims, "dim", []string{}, "Dimension restriction as name=code1,code2 - can be repeated")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Write to file instead of stdout")
	fetchCmd.Flags().StringVarP(&fetchFormat, "format", "f", "", "Output format: table|csv|yaml|json")
	fetchCmd.Flags().BoolVar(&fetchLabels, "labels", false, "Show human-readable labels instead of codes")

	viper.BindPFlag("fetch.geo", fetchCmd.Flags().Lookup("geo"))
	viper.BindPFlag("fetch.geo-level", fetchCmd.Flags().Lookup("geo-level"))
	viper.BindPFlag("fetch.time", fetchCmd.Flags().Lookup("time"))
	viper.BindPFlag("fetch.last", fetchCmd.Flags().Lookup("last"))
	viper.BindPFlag("fetch.since-period", fetchCmd.Flags().Lookup("since-period"))
	viper.BindPFlag("fetch.until-period", fetchCmd.Flags().Lookup("until-period"))
	viper.BindPFlag("fetch.dim", fetchCmd.Flags().Lookup("dim"))
	viper.BindPFlag("fetch.output", fetchCmd.Flags().Lookup("output"))
	viper.BindPFlag("fetch.format", fetchCmd.Flags().Lookup("format"))
	viper.BindPFlag("fetch.labels", fetchCmd.Flags().Lookup("labels"))
}
