package metrics

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"tasktune/internal/logging"
	"tasktune/internal/speech"
)

// Runner runs one utterance through a pipeline. *pipeline.Pipeline satisfies
// it.
type Runner interface {
	Run(ctx context.Context, speechInput, speakerContext string) (*speech.Result, error)
}

// Prediction pairs one example with its scored pipeline output.
type Prediction struct {
	Example speech.Example `json:"example"`
	Result  *speech.Result `json:"prediction"`
	Score   float64        `json:"score"`
}

// Report is the outcome of evaluating one metric over a set of examples.
// Failed examples keep their zero score and are counted in NumErrors;
// Predictions holds the successful runs only.
type Report struct {
	MetricName   string       `json:"metric_name"`
	AverageScore float64      `json:"average_score"`
	Scores       []float64    `json:"scores"`
	NumExamples  int          `json:"num_examples"`
	NumErrors    int          `json:"num_errors"`
	Predictions  []Prediction `json:"predictions,omitempty"`
}

// Min returns the lowest score, or 0 with no scores.
func (r *Report) Min() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	m := r.Scores[0]
	for _, s := range r.Scores[1:] {
		if s < m {
			m = s
		}
	}
	return m
}

// Max returns the highest score, or 0 with no scores.
func (r *Report) Max() float64 {
	if len(r.Scores) == 0 {
		return 0
	}
	m := r.Scores[0]
	for _, s := range r.Scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}

// Evaluator scores a pipeline over example sets.
type Evaluator struct {
	runner   Runner
	parallel int
	log      *slog.Logger
}

// NewEvaluator builds an evaluator. parallel caps concurrent pipeline runs;
// values below 2 evaluate sequentially.
func NewEvaluator(r Runner, parallel int) *Evaluator {
	if parallel < 1 {
		parallel = 1
	}
	return &Evaluator{
		runner:   r,
		parallel: parallel,
		log:      logging.New("metrics"),
	}
}

// Evaluate scores every example with the named metric. A failing pipeline
// run keeps its zero score and increments the error count; only a canceled
// context aborts the pass.
func (e *Evaluator) Evaluate(ctx context.Context, examples []speech.Example, metricName string) (*Report, error) {
	metric, err := ByName(metricName)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(examples))
	slots := make([]*Prediction, len(examples))
	var failed atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.parallel)
	for i, ex := range examples {
		i, ex := i, ex
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := e.runner.Run(gCtx, ex.SpeechInput, ex.SpeakerContext)
			if err != nil {
				if gCtx.Err() != nil {
					return gCtx.Err()
				}
				e.log.Warn("example failed", "index", i, "speech", ex.SpeechInput, "error", err)
				failed.Add(1)
				return nil
			}
			scores[i] = metric(ex, res)
			slots[i] = &Prediction{Example: ex, Result: res, Score: scores[i]}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	predictions := make([]Prediction, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			predictions = append(predictions, *p)
		}
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := 0.0
	if len(scores) > 0 {
		avg = sum / float64(len(scores))
	}

	e.log.Debug("metric pass complete",
		"metric", metricName, "examples", len(examples), "errors", failed.Load(), "average", avg)

	return &Report{
		MetricName:   metricName,
		AverageScore: avg,
		Scores:       scores,
		NumExamples:  len(examples),
		NumErrors:    int(failed.Load()),
		Predictions:  predictions,
	}, nil
}

// EvaluateAll runs every metric in the fixed order, re-running the pipeline
// for each pass, and maps metric name to average score.
func (e *Evaluator) EvaluateAll(ctx context.Context, examples []speech.Example) (map[string]float64, error) {
	out := make(map[string]float64, len(metricOrder))
	for _, name := range metricOrder {
		report, err := e.Evaluate(ctx, examples, name)
		if err != nil {
			return nil, err
		}
		out[name] = report.AverageScore
	}
	return out, nil
}
