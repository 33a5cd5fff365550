package health

import "context"

// DatasetCounter reports how many ranking rows are loaded.
type DatasetCounter interface {
	Len() int
}

// ModelChecker checks language-model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}

// CachePinger checks intent-cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
