package backend

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"tasktune/internal/prompt"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// geminiKeyEnv is the environment variable consulted when the config leaves
// the API key empty.
const geminiKeyEnv = "GEMINI_API_KEY"

// GeminiConfig carries the credentials and model choice for the live
// backend.
type GeminiConfig struct {
	// APIKey overrides the GEMINI_API_KEY environment variable.
	APIKey string
	// Model names the Gemini model, e.g. "gemini-2.0-flash".
	Model string
}

// Gemini calls the Gemini API. System messages become the system
// instruction; user and assistant turns map onto user and model contents.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini validates the credentials and builds the API client. A missing
// key is reported here, not on the first Generate call.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	key := cfg.APIKey
	if key == "" {
		key = os.Getenv(geminiKeyEnv)
	}
	if key == "" {
		return nil, fmt.Errorf("gemini backend: %s is not set", geminiKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("gemini backend: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Generate(ctx context.Context, p prompt.Prompt) (string, error) {
	var cfg *genai.GenerateContentConfig
	contents := make([]*genai.Content, 0, len(p))

	for _, m := range p {
		switch m.Role {
		case prompt.RoleSystem:
			if cfg == nil {
				cfg = &genai.GenerateContentConfig{}
			}
			cfg.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case prompt.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return resp.Text(), nil
}
