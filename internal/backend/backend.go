// Package backend abstracts the completion providers pipelines call into:
// a local rule-driven simulator and the Gemini API.
package backend

import (
	"context"

	"tasktune/internal/prompt"
)

// Backend produces one completion for a rendered prompt.
type Backend interface {
	// Name identifies the backend in logs and reports.
	Name() string
	// Generate returns the raw completion text for the prompt.
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
}
