package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"tasktune/internal/speech"
)

// Load reads a dataset file written by SaveDataset. Splits absent from the
// file come back empty rather than failing.
func Load(path string) (*speech.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var ds speech.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &ds, nil
}

// Examples returns one split of a dataset, truncated to limit when limit is
// positive.
func Examples(ds *speech.Dataset, split string, limit int) ([]speech.Example, error) {
	var examples []speech.Example
	switch split {
	case speech.SplitTrain:
		examples = ds.Train
	case speech.SplitDev:
		examples = ds.Dev
	case speech.SplitTest:
		examples = ds.Test
	default:
		return nil, fmt.Errorf("unknown split %q (want train, dev, or test)", split)
	}
	if limit > 0 && limit < len(examples) {
		return examples[:limit], nil
	}
	return examples, nil
}

// Stats summarizes a dataset: split sizes plus intent and speaker histograms.
type Stats struct {
	Total    int            `json:"total"`
	Train    int            `json:"train"`
	Dev      int            `json:"dev"`
	Test     int            `json:"test"`
	Intents  map[string]int `json:"intents"`
	Speakers map[string]int `json:"speakers"`
}

// Collect computes statistics over all splits of a dataset.
func Collect(ds *speech.Dataset) *Stats {
	s := &Stats{
		Train:    len(ds.Train),
		Dev:      len(ds.Dev),
		Test:     len(ds.Test),
		Intents:  make(map[string]int),
		Speakers: make(map[string]int),
	}
	s.Total = s.Train + s.Dev + s.Test
	for _, split := range [][]speech.Example{ds.Train, ds.Dev, ds.Test} {
		for _, ex := range split {
			intent := ex.Intent
			if intent == "" {
				intent = "unknown"
			}
			s.Intents[intent]++
			speaker := ex.SpeakerContext
			if speaker == "" {
				speaker = "unknown"
			}
			s.Speakers[speaker]++
		}
	}
	return s
}
