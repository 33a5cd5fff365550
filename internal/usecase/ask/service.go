// Package ask orchestrates the full question pipeline: intent
// extraction, deterministic query execution, and answer composition.
package ask

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/domain"
	"github.com/kinhostella/atletismo/internal/logger"
	"github.com/kinhostella/atletismo/internal/metrics"
	"github.com/kinhostella/atletismo/internal/repository/ranking"
)

// Answer is the final response for one question.
type Answer struct {
	Text     string
	Warnings []string
}

// Service wires the three pipeline stages over the loaded dataset.
type Service struct {
	table     *ranking.Table
	extractor Extractor
	engine    Engine
	composer  Composer
}

func New(table *ranking.Table, extractor Extractor, engine Engine, composer Composer) *Service {
	return &Service{
		table:     table,
		extractor: extractor,
		engine:    engine,
		composer:  composer,
	}
}

// Ask answers one natural-language question. A missing dataset fails with
// ErrDataLoad; empty question text is rejected before touching the model.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	if s.table == nil || s.table.Len() == 0 {
		return Answer{}, fmt.Errorf("%w: dataset not loaded", domain.ErrDataLoad)
	}
	if strings.TrimSpace(question) == "" {
		return Answer{}, fmt.Errorf("empty question")
	}

	log := logger.FromContext(ctx)
	start := time.Now()

	intent, err := s.extractor.Extract(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	result := s.engine.Execute(intent, s.table.Records())

	outcome := "results"
	if result.Empty() {
		outcome = "empty"
	}
	metrics.QueriesTotal.WithLabelValues(string(intent.Action), outcome).Inc()

	text, err := s.composer.Compose(ctx, result, question)
	if err != nil {
		return Answer{}, err
	}

	log.Info("question answered",
		zap.String("action", string(intent.Action)),
		zap.Int("rows", len(result.Rows)),
		zap.Strings("warnings", result.Warnings),
		zap.Duration("took", time.Since(start)),
	)

	return Answer{Text: text, Warnings: result.Warnings}, nil
}
