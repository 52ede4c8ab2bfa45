package optimize

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tasktune/internal/backend"
	"tasktune/internal/oracle"
	"tasktune/internal/pipeline"
	"tasktune/internal/prompt"
	"tasktune/internal/speech"
)

func cleanExamples() []speech.Example {
	return []speech.Example{
		{
			SpeechInput: "Set timer for 20 minutes", SpeakerContext: speech.SpeakerParent,
			Intent: "set_timer",
			ExpectedTask: speech.Task{Action: "set_timer",
				Parameters: map[string]string{"duration": "20"}, Priority: speech.PriorityMedium},
		},
		{
			SpeechInput: "We're out of milk", SpeakerContext: speech.SpeakerParent,
			Intent: "add_to_shopping_list",
			ExpectedTask: speech.Task{Action: "add_to_shopping_list",
				Parameters: map[string]string{"item": "milk"}, Priority: speech.PriorityLow},
		},
		{
			SpeechInput: "Turn on the fan", SpeakerContext: speech.SpeakerTeen,
			Intent: "control_device",
			ExpectedTask: speech.Task{Action: "control_device",
				Parameters: map[string]string{"device": "fan"}, Priority: speech.PriorityMedium},
		},
		{
			SpeechInput: "Remind me to call dentist at 3pm", SpeakerContext: speech.SpeakerParent,
			Intent: "set_reminder",
			ExpectedTask: speech.Task{Action: "set_reminder",
				Parameters: map[string]string{"task": "call dentist", "time": "3pm"}, Priority: speech.PriorityHigh},
		},
		{
			SpeechInput: "Set timer for 5 minutes", SpeakerContext: speech.SpeakerChild,
			Intent: "set_timer",
			ExpectedTask: speech.Task{Action: "set_timer",
				Parameters: map[string]string{"duration": "5"}, Priority: speech.PriorityMedium},
		},
		{
			SpeechInput: "We need eggs", SpeakerContext: speech.SpeakerParent,
			Intent: "add_to_shopping_list",
			ExpectedTask: speech.Task{Action: "add_to_shopping_list",
				Parameters: map[string]string{"item": "eggs"}, Priority: speech.PriorityLow},
		},
	}
}

func simBackend() *backend.Sim {
	return backend.NewSim(oracle.New(oracle.Config{ErrorRate: 0, Seed: 42}))
}

func directPipeline(t *testing.T, b backend.Backend) *pipeline.Pipeline {
	t.Helper()
	p, err := pipeline.New(pipeline.VariantDirect, b)
	if err != nil {
		t.Fatalf("pipeline.New: %v", err)
	}
	return p
}

func TestBootstrapCollectsPassingRuns(t *testing.T) {
	train := cleanExamples()
	compiled, err := BootstrapFewShot(context.Background(), directPipeline(t, simBackend()), train, DefaultConfig())
	if err != nil {
		t.Fatalf("BootstrapFewShot: %v", err)
	}

	demos := compiled.Demos()
	if len(demos) != 4 {
		t.Fatalf("demos = %d, want the bootstrapped cap of 4", len(demos))
	}
	for i, d := range demos {
		if got, want := d.Inputs["speech_input"], train[i].SpeechInput; got != want {
			t.Errorf("demo %d input = %q, want encounter order %q", i, got, want)
		}
		if d.Outputs["task_json"] == "" {
			t.Errorf("demo %d missing task_json output", i)
		}
		if d.Outputs["confidence"] == "" {
			t.Errorf("demo %d missing confidence output", i)
		}
		if d.Outputs["reasoning"] == "" {
			t.Errorf("demo %d missing reasoning from the chain-of-thought candidate", i)
		}
	}
}

// A perfect score does not strictly exceed a threshold of 1.0, so nothing
// bootstraps and the raw labeled examples pad the set instead.
func TestBootstrapThresholdIsStrict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Threshold = 1.0

	train := cleanExamples()
	compiled, err := BootstrapFewShot(context.Background(), directPipeline(t, simBackend()), train, cfg)
	if err != nil {
		t.Fatalf("BootstrapFewShot: %v", err)
	}

	demos := compiled.Demos()
	if len(demos) != cfg.MaxLabeled {
		t.Fatalf("demos = %d, want %d labeled pads", len(demos), cfg.MaxLabeled)
	}
	for i, d := range demos {
		if got, want := d.Inputs["speech_input"], train[i].SpeechInput; got != want {
			t.Errorf("labeled demo %d input = %q, want %q", i, got, want)
		}
		if _, ok := d.Outputs["confidence"]; ok {
			t.Errorf("labeled demo %d should not fabricate a confidence", i)
		}
		if !strings.Contains(d.Outputs["task_json"], train[i].ExpectedTask.Action) {
			t.Errorf("labeled demo %d task_json missing the labeled action: %s", i, d.Outputs["task_json"])
		}
	}
}

// With a short training cap the labeled padding re-uses examples already
// bootstrapped; the set is not deduplicated.
func TestBootstrapPadsWithoutDedup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrainCap = 2

	train := cleanExamples()
	compiled, err := BootstrapFewShot(context.Background(), directPipeline(t, simBackend()), train, cfg)
	if err != nil {
		t.Fatalf("BootstrapFewShot: %v", err)
	}

	demos := compiled.Demos()
	if len(demos) != 4 {
		t.Fatalf("demos = %d, want 2 bootstrapped + 2 labeled", len(demos))
	}
	if demos[0].Inputs["speech_input"] != demos[2].Inputs["speech_input"] {
		t.Error("padding should repeat the capped examples without deduplication")
	}
}

type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }

func (failingBackend) Generate(context.Context, prompt.Prompt) (string, error) {
	return "", errors.New("backend down")
}

func TestCompileFallsBackToCandidate(t *testing.T) {
	o := New(DefaultConfig(), failingBackend{}, cleanExamples(), nil)

	compiled, err := o.Compile(context.Background())
	if err != nil {
		t.Fatalf("Compile should fall back, got error: %v", err)
	}
	if compiled == nil {
		t.Fatal("Compile returned nil pipeline")
	}
	if len(compiled.Demos()) != 0 {
		t.Errorf("fallback candidate should carry no demos, got %d", len(compiled.Demos()))
	}
	if o.CompiledPipeline() != compiled {
		t.Error("CompiledPipeline should return the fallback candidate")
	}
}

func TestCompileAbortsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(DefaultConfig(), failingBackend{}, cleanExamples(), nil)
	if _, err := o.Compile(ctx); err == nil {
		t.Fatal("Compile should abort on a canceled context instead of falling back")
	}
}

func TestPhaseGuards(t *testing.T) {
	o := New(DefaultConfig(), simBackend(), cleanExamples(), cleanExamples()[:2])

	if _, err := o.EvaluateOptimized(context.Background()); err == nil {
		t.Error("EvaluateOptimized should require Compile")
	}
	if _, err := o.Compare(); err == nil {
		t.Error("Compare should require both evaluations")
	}
}

func TestOptimizerRun(t *testing.T) {
	examples := cleanExamples()
	o := New(DefaultConfig(), simBackend(), examples, examples[:3])

	results, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantMetrics := []string{"intent_accuracy", "parameter_accuracy", "task_completeness", "overall_accuracy"}
	for _, m := range wantMetrics {
		if _, ok := results.Baseline[m]; !ok {
			t.Errorf("baseline missing %q", m)
		}
		if _, ok := results.Optimized[m]; !ok {
			t.Errorf("optimized missing %q", m)
		}
		c, ok := results.Comparison[m]
		if !ok {
			t.Fatalf("comparison missing %q", m)
		}
		if math.Abs(c.Improvement-(c.Optimized-c.Baseline)) > 1e-9 {
			t.Errorf("%s improvement = %v, want optimized-baseline", m, c.Improvement)
		}
		// The quiet simulator answers both variants identically, so tuning
		// cannot move any score.
		if math.Abs(c.Improvement) > 1e-9 {
			t.Errorf("%s improvement = %v, want 0 under the quiet simulator", m, c.Improvement)
		}
	}

	if len(o.CompiledPipeline().Demos()) == 0 {
		t.Error("compiled pipeline should carry demonstrations")
	}
}

func TestCompareIdempotent(t *testing.T) {
	examples := cleanExamples()
	o := New(DefaultConfig(), simBackend(), examples, examples[:2])
	if _, err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	first, err := o.Compare()
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	second, err := o.Compare()
	if err != nil {
		t.Fatalf("Compare again: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Compare is not idempotent (-first +second):\n%s", diff)
	}
}

func TestComparePercentages(t *testing.T) {
	o := New(DefaultConfig(), simBackend(), nil, nil)
	o.baseline = map[string]float64{"intent_accuracy": 0.5, "task_completeness": 0}
	o.optimized = map[string]float64{"intent_accuracy": 0.75, "task_completeness": 0.5}

	comparison, err := o.Compare()
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}

	intent := comparison["intent_accuracy"]
	if math.Abs(intent.Improvement-0.25) > 1e-9 {
		t.Errorf("improvement = %v, want 0.25", intent.Improvement)
	}
	if math.Abs(intent.ImprovementPct-50) > 1e-9 {
		t.Errorf("improvement_pct = %v, want 50", intent.ImprovementPct)
	}

	// A zero baseline cannot express a percentage; it stays at zero.
	complete := comparison["task_completeness"]
	if complete.ImprovementPct != 0 {
		t.Errorf("zero-baseline improvement_pct = %v, want 0", complete.ImprovementPct)
	}
}

func TestResultsSaveLoad(t *testing.T) {
	r := &Results{
		Baseline:  map[string]float64{"intent_accuracy": 0.8},
		Optimized: map[string]float64{"intent_accuracy": 0.9},
		Comparison: map[string]MetricComparison{
			"intent_accuracy": {Baseline: 0.8, Optimized: 0.9, Improvement: 0.1, ImprovementPct: 12.5},
		},
	}

	path := t.TempDir() + "/results/optimization_results.json"
	if err := r.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadResults(path)
	if err != nil {
		t.Fatalf("LoadResults: %v", err)
	}
	if diff := cmp.Diff(r, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadResultsMissing(t *testing.T) {
	if _, err := LoadResults(t.TempDir() + "/absent.json"); err == nil {
		t.Fatal("LoadResults should fail on a missing file")
	}
}
