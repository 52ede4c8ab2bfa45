package dataset

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"tasktune/internal/speech"
)

// Default split ratios. Whatever remains after train and dev becomes test.
const (
	DefaultTrainRatio = 0.6
	DefaultDevRatio   = 0.2
)

// fillerChance is the fraction of commands prefixed with a filler word to
// simulate natural speech.
const fillerChance = 0.2

var fillers = []string{"um", "uh", "please", "now"}

// Generator produces simulated speech command examples from a catalog.
// A fixed seed yields an identical dataset across runs.
type Generator struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewGenerator returns a generator drawing from the given catalog.
func NewGenerator(catalog *Catalog, seed int64) *Generator {
	return &Generator{
		catalog: catalog,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Generate produces count examples with random categories and speakers.
// Teen speakers borrow parent or child phrasing but keep their own
// speaker context.
func (g *Generator) Generate(count int) []speech.Example {
	speakers := []string{speech.SpeakerParent, speech.SpeakerChild, speech.SpeakerTeen}
	examples := make([]speech.Example, 0, count)
	for i := 0; i < count; i++ {
		cat := &g.catalog.Categories[g.rng.Intn(len(g.catalog.Categories))]
		speaker := speakers[g.rng.Intn(len(speakers))]
		persona := speaker
		if speaker == speech.SpeakerTeen {
			if g.rng.Intn(2) == 0 {
				persona = speech.SpeakerParent
			} else {
				persona = speech.SpeakerChild
			}
		}
		ex := g.command(cat, persona)
		ex.SpeakerContext = speaker
		examples = append(examples, ex)
	}
	return examples
}

// command renders one example for a category and persona.
func (g *Generator) command(cat *Category, persona string) speech.Example {
	templates := cat.Templates(persona)
	text := templates[g.rng.Intn(len(templates))]

	params := make(map[string]string)
	for _, pool := range cat.Params {
		marker := "{" + pool.Name + "}"
		if !strings.Contains(text, marker) {
			continue
		}
		value := pool.Values[g.rng.Intn(len(pool.Values))]
		params[pool.Name] = value
		text = strings.ReplaceAll(text, marker, value)
	}

	if g.rng.Float64() < fillerChance {
		text = fillers[g.rng.Intn(len(fillers))] + " " + text
	}

	return speech.Example{
		SpeechInput:    text,
		SpeakerContext: persona,
		Intent:         cat.Intent,
		ExpectedTask: speech.Task{
			Action:     cat.Intent,
			Parameters: params,
			Priority:   cat.Priority,
			Category:   cat.Name,
		},
	}
}

// Split shuffles a copy of the examples and cuts it into train/dev/test.
// Sizes truncate, so test absorbs the remainder.
func (g *Generator) Split(examples []speech.Example, trainRatio, devRatio float64) *speech.Dataset {
	shuffled := make([]speech.Example, len(examples))
	copy(shuffled, examples)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := len(shuffled)
	trainSize := int(float64(n) * trainRatio)
	devSize := int(float64(n) * devRatio)
	return &speech.Dataset{
		Train: shuffled[:trainSize],
		Dev:   shuffled[trainSize : trainSize+devSize],
		Test:  shuffled[trainSize+devSize:],
	}
}

// SaveDataset writes a dataset as indented JSON, creating parent
// directories as needed.
func SaveDataset(ds *speech.Dataset, path string) error {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
