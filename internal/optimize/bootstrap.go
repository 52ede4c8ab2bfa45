package optimize

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"tasktune/internal/metrics"
	"tasktune/internal/pipeline"
	"tasktune/internal/prompt"
	"tasktune/internal/speech"
)

// BootstrapFewShot runs the candidate over the training examples in order
// and keeps the runs whose overall accuracy strictly exceeds the threshold,
// up to MaxBootstrapped demonstrations. When that cap is not reached, up to
// MaxLabeled raw labeled examples are padded in, again in encounter order
// and without deduplication against the bootstrapped picks. The returned
// pipeline is a copy of the candidate carrying the demonstrations.
func BootstrapFewShot(ctx context.Context, candidate *pipeline.Pipeline, train []speech.Example, cfg Config) (*pipeline.Pipeline, error) {
	if cfg.TrainCap > 0 && len(train) > cfg.TrainCap {
		train = train[:cfg.TrainCap]
	}

	demos := make([]prompt.Demo, 0, cfg.MaxBootstrapped+cfg.MaxLabeled)
	for _, ex := range train {
		if len(demos) >= cfg.MaxBootstrapped {
			break
		}
		res, err := candidate.Run(ctx, ex.SpeechInput, ex.SpeakerContext)
		if err != nil {
			return nil, fmt.Errorf("bootstrap run %q: %w", ex.SpeechInput, err)
		}
		if metrics.OverallAccuracy(ex, res) > cfg.Threshold {
			demos = append(demos, bootstrappedDemo(ex, res))
		}
	}

	if len(demos) < cfg.MaxBootstrapped {
		for i := 0; i < len(train) && i < cfg.MaxLabeled; i++ {
			demos = append(demos, labeledDemo(train[i]))
		}
	}

	return candidate.WithDemos(demos), nil
}

// bootstrappedDemo captures a passing run as a worked example, keeping the
// outputs exactly as the candidate produced them.
func bootstrappedDemo(ex speech.Example, res *speech.Result) prompt.Demo {
	outputs := map[string]string{
		"task_json":  payloadString(res.TaskJSON),
		"confidence": strconv.FormatFloat(res.Confidence, 'g', -1, 64),
	}
	if res.Reasoning != "" {
		outputs["reasoning"] = res.Reasoning
	}
	return prompt.Demo{
		Inputs: map[string]string{
			"speech_input":    ex.SpeechInput,
			"speaker_context": ex.SpeakerContext,
		},
		Outputs: outputs,
	}
}

// labeledDemo turns a raw dataset example into a worked example using its
// labels, without executing anything.
func labeledDemo(ex speech.Example) prompt.Demo {
	label, _ := json.Marshal(ex.ExpectedTask)
	return prompt.Demo{
		Inputs: map[string]string{
			"speech_input":    ex.SpeechInput,
			"speaker_context": ex.SpeakerContext,
		},
		Outputs: map[string]string{
			"intent":    ex.Intent,
			"task_json": string(label),
		},
	}
}

func payloadString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
