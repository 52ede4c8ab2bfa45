package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tasktune/internal/backend"
	"tasktune/internal/dataset"
	"tasktune/internal/format"
	"tasktune/internal/logging"
	"tasktune/internal/metrics"
	"tasktune/internal/optimize"
	"tasktune/internal/oracle"
	"tasktune/internal/store"
)

var optimizeFlags struct {
	data       string
	output     string
	backend    string
	model      string
	noise      float64
	seed       int64
	maxDemos   int
	maxLabeled int
	trainCap   int
	threshold  float64
	db         string
	noStore    bool
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Bootstrap few-shot demos and compare against the baseline",
	Long: `Optimize evaluates a bare baseline pipeline, compiles a candidate by
bootstrapping few-shot demonstrations from the train split, re-evaluates,
and writes the baseline/optimized comparison to a results file.`,
	RunE: runOptimize,
}

func init() {
	f := optimizeCmd.Flags()
	f.StringVar(&optimizeFlags.data, "data", "", "Path to dataset JSON (required)")
	f.StringVar(&optimizeFlags.output, "output", "results", "Output directory for results")
	f.StringVar(&optimizeFlags.backend, "backend", "sim", "Model backend (sim, gemini)")
	f.StringVar(&optimizeFlags.model, "model", backend.DefaultGeminiModel, "Model name for the gemini backend")
	f.Float64Var(&optimizeFlags.noise, "noise", oracle.DefaultErrorRate, "Sim backend intent misrecognition rate (0..1)")
	f.Int64Var(&optimizeFlags.seed, "seed", 42, "Sim backend random seed")

	def := optimize.DefaultConfig()
	f.IntVar(&optimizeFlags.maxDemos, "max-demos", def.MaxBootstrapped, "Max bootstrapped demonstrations")
	f.IntVar(&optimizeFlags.maxLabeled, "max-labeled", def.MaxLabeled, "Max labeled examples padded in after bootstrapping")
	f.IntVar(&optimizeFlags.trainCap, "train-cap", def.TrainCap, "Training examples considered during compile")
	f.Float64Var(&optimizeFlags.threshold, "threshold", def.Threshold, "Overall accuracy a run must exceed to become a demo")

	f.StringVar(&optimizeFlags.db, "db", store.DefaultDBPath, "Run-history DB path")
	f.BoolVar(&optimizeFlags.noStore, "no-store", false, "Skip recording this run in the history DB")

	_ = optimizeCmd.MarkFlagRequired("data")
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ds, err := dataset.Load(optimizeFlags.data)
	if err != nil {
		return err
	}

	b, _, err := buildBackend(cmd.Context(), optimizeFlags.backend, optimizeFlags.noise, optimizeFlags.seed, optimizeFlags.model)
	if err != nil {
		return err
	}

	cfg := optimize.Config{
		MaxBootstrapped: optimizeFlags.maxDemos,
		MaxLabeled:      optimizeFlags.maxLabeled,
		TrainCap:        optimizeFlags.trainCap,
		Threshold:       optimizeFlags.threshold,
	}
	opt := optimize.New(cfg, b, ds.Train, ds.Dev)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Optimizing on %d train / %d dev examples...\n", len(ds.Train), len(ds.Dev))

	start := time.Now()
	results, err := opt.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}
	log := logging.New("optimize")
	log.Debug("optimization finished", "elapsed", format.FmtDuration(time.Since(start)))

	outPath := filepath.Join(optimizeFlags.output, "optimization_results.json")
	if err := results.Save(outPath); err != nil {
		return err
	}

	fmt.Fprintln(out, renderComparison(results.Comparison))
	printOverallDelta(out, results.Comparison)
	fmt.Fprintf(out, "Results saved to %s\n", outPath)

	if optimizeFlags.noStore {
		return nil
	}
	// The results file is the artifact; run history is best effort.
	st, err := store.Open(optimizeFlags.db)
	if err != nil {
		log.Warn("run not recorded", "error", err)
		return nil
	}
	defer st.Close()
	id, err := recordRun(st, &store.Run{
		Kind:     store.KindOptimize,
		Dataset:  optimizeFlags.data,
		Pipeline: string(opt.CompiledPipeline().Variant()),
		Backend:  optimizeFlags.backend,
		Examples: len(ds.Dev),
		Score:    results.Optimized[metrics.MetricOverallAccuracy],
	}, results)
	if err != nil {
		log.Warn("run not recorded", "error", err)
		return nil
	}
	fmt.Fprintf(out, "Run saved: %s\n", id)
	return nil
}
