package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktune/internal/display"
	"tasktune/internal/format"
	"tasktune/internal/store"
)

var runsFlags struct {
	db    string
	limit int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recorded evaluation and optimization runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run with its full report",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	pf := runsCmd.PersistentFlags()
	pf.StringVar(&runsFlags.db, "db", store.DefaultDBPath, "Run-history DB path")
	runsListCmd.Flags().IntVar(&runsFlags.limit, "limit", 20, "Max runs to list (0 = all)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(runsFlags.db)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(runsFlags.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs.")
		return nil
	}

	tbl := format.NewTable(format.ASCII)
	tbl.Title("Recorded Runs")
	tbl.Header("ID", "Kind", "Pipeline", "Backend", "Split", "Examples", "Score", "Created")
	tbl.Columns(
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
		format.ColumnConfig{Number: 7, Align: format.AlignRight},
	)
	for _, r := range runs {
		split := r.Split
		if split == "" {
			split = "-"
		}
		tbl.Row(
			shortID(r.ID),
			r.Kind,
			display.Variant(r.Pipeline),
			display.Backend(r.Backend),
			split,
			r.Examples,
			format.Percent(r.Score),
			r.CreatedAt,
		)
	}
	fmt.Fprintln(out, tbl.String())
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	st, err := store.Open(runsFlags.db)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	id := args[0]
	run, err := st.GetRun(id)
	if err != nil {
		return err
	}
	if run == nil {
		// Allow the truncated IDs shown by runs list.
		run, err = findRunByPrefix(st, id)
		if err != nil {
			return err
		}
	}
	if run == nil {
		return fmt.Errorf("run %s not found", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:      %s\n", run.ID)
	fmt.Fprintf(out, "Kind:     %s\n", run.Kind)
	fmt.Fprintf(out, "Dataset:  %s\n", run.Dataset)
	if run.Split != "" {
		fmt.Fprintf(out, "Split:    %s\n", run.Split)
	}
	fmt.Fprintf(out, "Pipeline: %s\n", display.Variant(run.Pipeline))
	fmt.Fprintf(out, "Backend:  %s\n", display.Backend(run.Backend))
	fmt.Fprintf(out, "Examples: %d\n", run.Examples)
	fmt.Fprintf(out, "Score:    %s\n", format.Percent(run.Score))
	fmt.Fprintf(out, "Created:  %s\n", run.CreatedAt)
	fmt.Fprintf(out, "\n%s\n", run.Payload)
	return nil
}

// shortID abbreviates a run UUID for table display. runs show accepts the
// abbreviated form back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findRunByPrefix resolves a truncated run ID to a unique stored run.
func findRunByPrefix(st store.Store, prefix string) (*store.Run, error) {
	runs, err := st.ListRuns(0)
	if err != nil {
		return nil, err
	}
	var match *store.Run
	for _, r := range runs {
		if len(r.ID) >= len(prefix) && r.ID[:len(prefix)] == prefix {
			if match != nil {
				return nil, fmt.Errorf("run prefix %s is ambiguous", prefix)
			}
			match = r
		}
	}
	return match, nil
}
