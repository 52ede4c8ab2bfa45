package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tasktune/internal/display"
	"tasktune/internal/format"
	"tasktune/internal/metrics"
	"tasktune/internal/optimize"
)

var compareFlags struct {
	results string
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Show a saved baseline-versus-optimized comparison",
	RunE:  runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareFlags.results, "results", "", "Path to optimization results JSON (required)")

	_ = compareCmd.MarkFlagRequired("results")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	results, err := optimize.LoadResults(compareFlags.results)
	if err != nil {
		return err
	}
	if len(results.Comparison) == 0 {
		return fmt.Errorf("no comparison data found in %s", compareFlags.results)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderComparison(results.Comparison))
	printOverallDelta(out, results.Comparison)
	return nil
}

// renderComparison builds the per-metric baseline/optimized table.
func renderComparison(comparison map[string]optimize.MetricComparison) string {
	tbl := format.NewTable(format.ASCII)
	tbl.Title("Baseline vs Optimized Comparison")
	tbl.Header("Metric", "Baseline", "Optimized", "Improvement")
	tbl.Columns(
		format.ColumnConfig{Number: 2, Align: format.AlignRight},
		format.ColumnConfig{Number: 3, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
	)
	for _, name := range metrics.Names() {
		c, ok := comparison[name]
		if !ok {
			continue
		}
		tbl.Row(
			display.Metric(name),
			format.Percent(c.Baseline),
			format.Percent(c.Optimized),
			format.SignedPercent(c.Improvement),
		)
	}
	return tbl.String()
}

// printOverallDelta summarizes the headline metric under the table.
func printOverallDelta(out io.Writer, comparison map[string]optimize.MetricComparison) {
	c, ok := comparison[metrics.MetricOverallAccuracy]
	if !ok {
		return
	}
	fmt.Fprintf(out, "Overall accuracy: %s -> %s (%s relative)\n",
		format.Percent(c.Baseline), format.Percent(c.Optimized), format.SignedPoints(c.ImprovementPct))
}
