package main

import (
	"context"
	"encoding/json"
	"fmt"

	"tasktune/internal/backend"
	"tasktune/internal/dataset"
	"tasktune/internal/oracle"
	"tasktune/internal/speech"
	"tasktune/internal/store"
)

// buildBackend constructs the model backend named by --backend. For the sim
// backend the oracle is returned too so commands can report call counts.
func buildBackend(ctx context.Context, name string, noise float64, seed int64, model string) (backend.Backend, *oracle.Oracle, error) {
	switch name {
	case "sim":
		o := oracle.New(oracle.Config{ErrorRate: noise, Seed: seed})
		return backend.NewSim(o), o, nil
	case "gemini":
		b, err := backend.NewGemini(ctx, backend.GeminiConfig{Model: model})
		if err != nil {
			return nil, nil, err
		}
		return b, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want sim or gemini)", name)
	}
}

// loadSplit loads a dataset file and returns one split, truncated to limit.
func loadSplit(path, split string, limit int) ([]speech.Example, error) {
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	return dataset.Examples(ds, split, limit)
}

// recordRun persists a run record, returning the assigned ID.
func recordRun(st store.Store, run *store.Run, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run payload: %w", err)
	}
	run.Payload = string(data)
	return st.SaveRun(run)
}
