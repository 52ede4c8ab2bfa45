// Package pipeline chains prompt rendering, backend calls, and response
// parsing into the speech-to-task variants.
package pipeline

import (
	"context"
	"fmt"

	"tasktune/internal/backend"
	"tasktune/internal/prompt"
	"tasktune/internal/speech"
)

// Variant selects one of the pipeline architectures.
type Variant string

const (
	// VariantTwoStage extracts the intent first, then builds the task from
	// it. Both stages reason step by step.
	VariantTwoStage Variant = "two-stage"
	// VariantDirect maps speech straight to a task with reasoning.
	VariantDirect Variant = "direct"
	// VariantSimple is the bare single-step predictor used as the tuning
	// baseline.
	VariantSimple Variant = "simple"
)

// ParseVariant maps a flag value onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case VariantTwoStage, VariantDirect, VariantSimple:
		return v, nil
	}
	return "", fmt.Errorf("unknown pipeline variant %q (want two-stage, direct, or simple)", s)
}

// Pipeline executes one variant against a backend, optionally primed with
// worked examples.
type Pipeline struct {
	variant Variant
	backend backend.Backend
	demos   []prompt.Demo
}

// New builds a pipeline for the given variant.
func New(variant Variant, b backend.Backend) (*Pipeline, error) {
	switch variant {
	case VariantTwoStage, VariantDirect, VariantSimple:
	default:
		return nil, fmt.Errorf("unknown pipeline variant %q", variant)
	}
	return &Pipeline{variant: variant, backend: b}, nil
}

// Variant reports the architecture this pipeline runs.
func (p *Pipeline) Variant() Variant { return p.variant }

// Demos returns the attached worked examples.
func (p *Pipeline) Demos() []prompt.Demo { return p.demos }

// WithDemos returns a copy of the pipeline primed with the given worked
// examples. The receiver is unchanged.
func (p *Pipeline) WithDemos(demos []prompt.Demo) *Pipeline {
	cp := *p
	cp.demos = append([]prompt.Demo(nil), demos...)
	return &cp
}

// Run processes one utterance and returns the parsed prediction.
func (p *Pipeline) Run(ctx context.Context, speechInput, speakerContext string) (*speech.Result, error) {
	switch p.variant {
	case VariantTwoStage:
		return p.runTwoStage(ctx, speechInput, speakerContext)
	case VariantSimple:
		return p.runSingle(ctx, speechInput, speakerContext, prompt.SpeechToTaskDirect)
	default:
		return p.runSingle(ctx, speechInput, speakerContext, prompt.SpeechToTaskDirect.WithReasoning())
	}
}

// runTwoStage keeps the stage-one intent and confidence on the result; the
// task payload comes from stage two.
func (p *Pipeline) runTwoStage(ctx context.Context, speechInput, speakerContext string) (*speech.Result, error) {
	intentRaw, err := p.backend.Generate(ctx, prompt.Render(
		prompt.SpeechToIntent.WithReasoning(), p.demos, map[string]string{
			"speech_input":    speechInput,
			"speaker_context": speakerContext,
		}))
	if err != nil {
		return nil, fmt.Errorf("intent extraction: %w", err)
	}
	intent, confidence := parseIntentResponse(intentRaw)

	taskRaw, err := p.backend.Generate(ctx, prompt.Render(
		prompt.IntentToTask.WithReasoning(), p.demos, map[string]string{
			"intent":          intent,
			"speech_input":    speechInput,
			"speaker_context": speakerContext,
		}))
	if err != nil {
		return nil, fmt.Errorf("task generation: %w", err)
	}

	task := parseTaskResponse(taskRaw)
	return &speech.Result{
		Intent:     intent,
		Confidence: confidence,
		TaskJSON:   task.TaskJSON,
	}, nil
}

func (p *Pipeline) runSingle(ctx context.Context, speechInput, speakerContext string, sig prompt.Signature) (*speech.Result, error) {
	raw, err := p.backend.Generate(ctx, prompt.Render(sig, p.demos, map[string]string{
		"speech_input":    speechInput,
		"speaker_context": speakerContext,
	}))
	if err != nil {
		return nil, fmt.Errorf("task generation: %w", err)
	}
	return parseTaskResponse(raw), nil
}
