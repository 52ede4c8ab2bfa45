package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktune/internal/backend"
	"tasktune/internal/display"
	"tasktune/internal/oracle"
	"tasktune/internal/pipeline"
	"tasktune/internal/speech"
)

var demoFlags struct {
	input   string
	speaker string
	variant string
	backend string
	model   string
	noise   float64
	seed    int64
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run one speech command through a pipeline",
	RunE:  runDemoCmd,
}

func init() {
	f := demoCmd.Flags()
	f.StringVar(&demoFlags.input, "input", "", "Speech input text (required)")
	f.StringVar(&demoFlags.speaker, "speaker", speech.SpeakerParent, "Speaker context (parent, child, teen)")
	f.StringVar(&demoFlags.variant, "pipeline", "direct", "Pipeline variant (two-stage, direct, simple)")
	f.StringVar(&demoFlags.backend, "backend", "sim", "Model backend (sim, gemini)")
	f.StringVar(&demoFlags.model, "model", backend.DefaultGeminiModel, "Model name for the gemini backend")
	f.Float64Var(&demoFlags.noise, "noise", oracle.DefaultErrorRate, "Sim backend intent misrecognition rate (0..1)")
	f.Int64Var(&demoFlags.seed, "seed", 42, "Sim backend random seed")

	_ = demoCmd.MarkFlagRequired("input")
}

func runDemoCmd(cmd *cobra.Command, _ []string) error {
	switch demoFlags.speaker {
	case speech.SpeakerParent, speech.SpeakerChild, speech.SpeakerTeen:
	default:
		return fmt.Errorf("unknown speaker %q (want parent, child, or teen)", demoFlags.speaker)
	}
	variant, err := pipeline.ParseVariant(demoFlags.variant)
	if err != nil {
		return err
	}

	b, _, err := buildBackend(cmd.Context(), demoFlags.backend, demoFlags.noise, demoFlags.seed, demoFlags.model)
	if err != nil {
		return err
	}
	p, err := pipeline.New(variant, b)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Speech:   %s\n", demoFlags.input)
	fmt.Fprintf(out, "Speaker:  %s\n", display.Speaker(demoFlags.speaker))
	fmt.Fprintf(out, "Pipeline: %s\n", display.Variant(string(variant)))

	result, err := p.Run(cmd.Context(), demoFlags.input, demoFlags.speaker)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}

	if result.Intent != "" {
		fmt.Fprintf(out, "Intent:   %s\n", display.IntentWithCode(result.Intent))
	}
	fmt.Fprintf(out, "\nExtracted Task:\n%s\n", pipeline.FormatResult(result))
	return nil
}
