package questiongen

import (
	"context"

	"github.com/abhisek/dugout/internal/decision"
)

// Generator produces a Socratic coaching question for a decision context.
type Generator interface {
	// Generate returns one validated question. Any failure is an
	// *llm.ExternalServiceError.
	Generate(ctx context.Context, dc decision.Context) (string, error)
}
