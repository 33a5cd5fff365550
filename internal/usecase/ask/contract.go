package ask

import (
	"context"

	"github.com/kinhostella/atletismo/internal/domain"
)

// Extractor turns a question into a structured intent.
type Extractor interface {
	Extract(ctx context.Context, question string) (domain.Intent, error)
}

// Engine executes a structured intent against the ranking table.
type Engine interface {
	Execute(intent domain.Intent, records []domain.Record) domain.Result
}

// Composer produces the final answer text for a result.
type Composer interface {
	Compose(ctx context.Context, result domain.Result, question string) (string, error)
}
