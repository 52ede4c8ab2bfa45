// Package optimize compiles few-shot demonstrations for the task pipeline
// and measures the tuned variant against the plain baseline.
package optimize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tasktune/internal/backend"
	"tasktune/internal/logging"
	"tasktune/internal/metrics"
	"tasktune/internal/pipeline"
	"tasktune/internal/speech"
)

// Config bounds the bootstrap compile.
type Config struct {
	// MaxBootstrapped caps demonstrations taken from passing candidate runs.
	MaxBootstrapped int `json:"max_bootstrapped"`
	// MaxLabeled caps the raw labeled examples padded in when bootstrapping
	// leaves the cap unreached.
	MaxLabeled int `json:"max_labeled"`
	// TrainCap truncates the training split before compilation.
	TrainCap int `json:"train_cap"`
	// Threshold is the overall-accuracy score a run must strictly exceed to
	// become a demonstration.
	Threshold float64 `json:"threshold"`
}

// DefaultConfig returns the standard tuning bounds.
func DefaultConfig() Config {
	return Config{
		MaxBootstrapped: 4,
		MaxLabeled:      4,
		TrainCap:        20,
		Threshold:       0,
	}
}

// MetricComparison holds one metric's baseline-versus-optimized outcome.
type MetricComparison struct {
	Baseline       float64 `json:"baseline"`
	Optimized      float64 `json:"optimized"`
	Improvement    float64 `json:"improvement"`
	ImprovementPct float64 `json:"improvement_pct"`
}

// Results is the persisted outcome of one optimization run.
type Results struct {
	Baseline   map[string]float64          `json:"baseline"`
	Optimized  map[string]float64          `json:"optimized"`
	Comparison map[string]MetricComparison `json:"comparison"`
}

// Save writes the results as indented JSON, creating parent directories.
func (r *Results) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// LoadResults reads a results file written by Save.
func LoadResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	var r Results
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse results %s: %w", path, err)
	}
	return &r, nil
}

// Optimizer walks the tuning workflow: baseline evaluation, bootstrap
// compilation, optimized evaluation, comparison. Each phase guards its
// prerequisites. Evaluation is sequential so seeded runs stay reproducible.
type Optimizer struct {
	cfg     Config
	backend backend.Backend
	train   []speech.Example
	dev     []speech.Example
	log     *slog.Logger

	baseline  map[string]float64
	optimized map[string]float64
	compiled  *pipeline.Pipeline
}

// New builds an optimizer over pre-split data.
func New(cfg Config, b backend.Backend, train, dev []speech.Example) *Optimizer {
	return &Optimizer{
		cfg:     cfg,
		backend: b,
		train:   train,
		dev:     dev,
		log:     logging.New("optimize"),
	}
}

// EvaluateBaseline scores the plain single-step pipeline on the dev split
// with every metric.
func (o *Optimizer) EvaluateBaseline(ctx context.Context) (map[string]float64, error) {
	p, err := pipeline.New(pipeline.VariantSimple, o.backend)
	if err != nil {
		return nil, err
	}

	o.log.Info("evaluating baseline", "examples", len(o.dev))
	scores, err := metrics.NewEvaluator(p, 1).EvaluateAll(ctx, o.dev)
	if err != nil {
		return nil, fmt.Errorf("baseline evaluation: %w", err)
	}
	o.baseline = scores
	return scores, nil
}

// Compile bootstraps demonstrations onto a fresh direct pipeline. A failed
// compile falls back to the unmodified candidate; only context cancellation
// aborts.
func (o *Optimizer) Compile(ctx context.Context) (*pipeline.Pipeline, error) {
	candidate, err := pipeline.New(pipeline.VariantDirect, o.backend)
	if err != nil {
		return nil, err
	}

	o.log.Info("compiling demonstrations",
		"train", len(o.train), "max_bootstrapped", o.cfg.MaxBootstrapped, "max_labeled", o.cfg.MaxLabeled)

	compiled, err := BootstrapFewShot(ctx, candidate, o.train, o.cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		o.log.Warn("compile failed, keeping unmodified candidate", "error", err)
		compiled = candidate
	}

	o.compiled = compiled
	o.log.Info("compile complete", "demos", len(compiled.Demos()))
	return compiled, nil
}

// EvaluateOptimized scores the compiled pipeline on the same dev split.
func (o *Optimizer) EvaluateOptimized(ctx context.Context) (map[string]float64, error) {
	if o.compiled == nil {
		return nil, errors.New("optimize: Compile must run before evaluating the optimized pipeline")
	}

	o.log.Info("evaluating optimized pipeline", "examples", len(o.dev), "demos", len(o.compiled.Demos()))
	scores, err := metrics.NewEvaluator(o.compiled, 1).EvaluateAll(ctx, o.dev)
	if err != nil {
		return nil, fmt.Errorf("optimized evaluation: %w", err)
	}
	o.optimized = scores
	return scores, nil
}

// Compare derives per-metric improvements. It is pure over the stored
// evaluations: calling it again yields the same comparison.
func (o *Optimizer) Compare() (map[string]MetricComparison, error) {
	if o.baseline == nil || o.optimized == nil {
		return nil, errors.New("optimize: Compare requires baseline and optimized evaluations")
	}

	comparison := make(map[string]MetricComparison, len(o.baseline))
	for metric, base := range o.baseline {
		opt := o.optimized[metric]
		improvement := opt - base
		pct := 0.0
		if base > 0 {
			pct = improvement / base * 100
		}
		comparison[metric] = MetricComparison{
			Baseline:       base,
			Optimized:      opt,
			Improvement:    improvement,
			ImprovementPct: pct,
		}
	}
	return comparison, nil
}

// CompiledPipeline returns the pipeline produced by Compile, or nil.
func (o *Optimizer) CompiledPipeline() *pipeline.Pipeline { return o.compiled }

// Run walks the full workflow and assembles the results.
func (o *Optimizer) Run(ctx context.Context) (*Results, error) {
	if _, err := o.EvaluateBaseline(ctx); err != nil {
		return nil, err
	}
	if _, err := o.Compile(ctx); err != nil {
		return nil, err
	}
	if _, err := o.EvaluateOptimized(ctx); err != nil {
		return nil, err
	}
	comparison, err := o.Compare()
	if err != nil {
		return nil, err
	}
	return &Results{
		Baseline:   o.baseline,
		Optimized:  o.optimized,
		Comparison: comparison,
	}, nil
}
