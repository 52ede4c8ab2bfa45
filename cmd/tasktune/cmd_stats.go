package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tasktune/internal/dataset"
	"tasktune/internal/display"
	"tasktune/internal/format"
)

var statsFlags struct {
	data     string
	markdown bool
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize a dataset: split sizes and intent/speaker histograms",
	RunE:  runStats,
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsFlags.data, "data", "", "Dataset JSON path (required)")
	f.BoolVar(&statsFlags.markdown, "markdown", false, "Render tables as Markdown")

	_ = statsCmd.MarkFlagRequired("data")
}

func runStats(cmd *cobra.Command, _ []string) error {
	ds, err := dataset.Load(statsFlags.data)
	if err != nil {
		return err
	}
	stats := dataset.Collect(ds)

	mode := format.ASCII
	if statsFlags.markdown {
		mode = format.Markdown
	}

	out := cmd.OutOrStdout()

	splits := format.NewTable(mode)
	splits.Title("Dataset Splits")
	splits.Header("Split", "Examples")
	splits.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	splits.Row("Train", stats.Train)
	splits.Row("Dev", stats.Dev)
	splits.Row("Test", stats.Test)
	splits.Footer("Total", stats.Total)
	fmt.Fprintln(out, splits.String())

	fmt.Fprintln(out, histogramTable(mode, "Intents", "Intent", stats.Intents, display.Intent))
	fmt.Fprintln(out, histogramTable(mode, "Speakers", "Speaker", stats.Speakers, display.Speaker))
	return nil
}

// histogramTable renders a name-to-count histogram, most frequent first,
// ties broken by name so output is stable.
func histogramTable(mode format.Mode, title, label string, counts map[string]int, human func(string) string) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	tbl := format.NewTable(mode)
	tbl.Title(title)
	tbl.Header(label, "Count")
	tbl.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	for _, name := range names {
		tbl.Row(human(name), counts[name])
	}
	return tbl.String()
}
