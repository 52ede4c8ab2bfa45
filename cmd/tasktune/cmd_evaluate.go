package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tasktune/internal/backend"
	"tasktune/internal/display"
	"tasktune/internal/format"
	"tasktune/internal/logging"
	"tasktune/internal/metrics"
	"tasktune/internal/oracle"
	"tasktune/internal/pipeline"
	"tasktune/internal/store"
)

var evaluateFlags struct {
	data     string
	split    string
	limit    int
	variant  string
	backend  string
	model    string
	noise    float64
	seed     int64
	parallel int
	db       string
	noStore  bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a pipeline on a dataset split",
	Long: `Evaluate runs the chosen pipeline over one dataset split and scores it
with the full metric battery (intent accuracy, parameter accuracy, task
completeness, overall accuracy).`,
	RunE: runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.data, "data", "", "Path to dataset JSON (required)")
	f.StringVar(&evaluateFlags.split, "split", "dev", "Which split to evaluate (train, dev, test)")
	f.IntVar(&evaluateFlags.limit, "limit", 0, "Limit number of examples (0 = all)")
	f.StringVar(&evaluateFlags.variant, "pipeline", "direct", "Pipeline variant (two-stage, direct, simple)")
	f.StringVar(&evaluateFlags.backend, "backend", "sim", "Model backend (sim, gemini)")
	f.StringVar(&evaluateFlags.model, "model", backend.DefaultGeminiModel, "Model name for the gemini backend")
	f.Float64Var(&evaluateFlags.noise, "noise", oracle.DefaultErrorRate, "Sim backend intent misrecognition rate (0..1)")
	f.Int64Var(&evaluateFlags.seed, "seed", 42, "Sim backend random seed")
	f.IntVar(&evaluateFlags.parallel, "parallel", 1, "Number of parallel evaluation workers")
	f.StringVar(&evaluateFlags.db, "db", store.DefaultDBPath, "Run-history DB path")
	f.BoolVar(&evaluateFlags.noStore, "no-store", false, "Skip recording this run in the history DB")

	_ = evaluateCmd.MarkFlagRequired("data")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	variant, err := pipeline.ParseVariant(evaluateFlags.variant)
	if err != nil {
		return err
	}
	examples, err := loadSplit(evaluateFlags.data, evaluateFlags.split, evaluateFlags.limit)
	if err != nil {
		return err
	}

	b, orcl, err := buildBackend(cmd.Context(), evaluateFlags.backend, evaluateFlags.noise, evaluateFlags.seed, evaluateFlags.model)
	if err != nil {
		return err
	}
	p, err := pipeline.New(variant, b)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Evaluating on %d examples from %s set...\n", len(examples), evaluateFlags.split)

	start := time.Now()
	evaluator := metrics.NewEvaluator(p, evaluateFlags.parallel)
	scores, err := evaluator.EvaluateAll(cmd.Context(), examples)
	if err != nil {
		return fmt.Errorf("evaluate %s split: %w", evaluateFlags.split, err)
	}

	tbl := format.NewTable(format.ASCII)
	tbl.Title(fmt.Sprintf("Evaluation Results (%s)", evaluateFlags.split))
	tbl.Header("Metric", "Score")
	tbl.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	for _, name := range metrics.Names() {
		tbl.Row(display.Metric(name), format.Percent(scores[name]))
	}
	fmt.Fprintln(out, tbl.String())

	log := logging.New("evaluate")
	args := []any{"examples", len(examples), "elapsed", format.FmtDuration(time.Since(start))}
	if orcl != nil {
		args = append(args, "calls", orcl.Calls())
	}
	log.Debug("evaluation finished", args...)

	if evaluateFlags.noStore {
		return nil
	}
	// Run history is an amenity: a broken store must not fail a finished
	// evaluation.
	st, err := store.Open(evaluateFlags.db)
	if err != nil {
		log.Warn("run not recorded", "error", err)
		return nil
	}
	defer st.Close()
	id, err := recordRun(st, &store.Run{
		Kind:     store.KindEvaluate,
		Dataset:  evaluateFlags.data,
		Split:    evaluateFlags.split,
		Pipeline: string(variant),
		Backend:  evaluateFlags.backend,
		Examples: len(examples),
		Score:    scores[metrics.MetricOverallAccuracy],
	}, scores)
	if err != nil {
		log.Warn("run not recorded", "error", err)
		return nil
	}
	fmt.Fprintf(out, "Run saved: %s\n", id)
	return nil
}
