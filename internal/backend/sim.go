package backend

import (
	"context"

	"tasktune/internal/oracle"
	"tasktune/internal/prompt"
)

// Sim answers locally through the rule oracle. Only the final message is
// consulted, the way a single-turn completion endpoint folds a conversation,
// so rendered demonstrations must never displace the live user message.
type Sim struct {
	oracle *oracle.Oracle
}

// NewSim wraps an oracle. The caller keeps the reference for call counting
// and history inspection.
func NewSim(o *oracle.Oracle) *Sim {
	return &Sim{oracle: o}
}

func (s *Sim) Name() string { return "sim" }

// Generate never fails: the oracle has an answer for any text.
func (s *Sim) Generate(_ context.Context, p prompt.Prompt) (string, error) {
	return s.oracle.Respond(p.Last()), nil
}
