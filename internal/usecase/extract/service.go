// Package extract turns a free-text question into a structured query intent.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kinhostella/atletismo/internal/domain"
	"github.com/kinhostella/atletismo/internal/domain/normalize"
	"github.com/kinhostella/atletismo/internal/logger"
)

// Interpreter is the model boundary for intent extraction.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}

// Service extracts query intents from user questions.
type Service struct {
	llm Interpreter
}

// New creates an extraction service.
func New(llm Interpreter) *Service {
	return &Service{llm: llm}
}

// Extract normalizes the question, asks the model for the intent payload,
// and parses it. Transport failures and malformed payloads both surface as
// domain.ErrIntentExtraction; nothing here mutates shared state, so the
// caller can simply report the failure and accept the next question.
func (s *Service) Extract(ctx context.Context, question string) (domain.Intent, error) {
	prompt := fmt.Sprintf(schemaPrompt, normalize.Apply(question))

	response, err := s.llm.Interpret(ctx, prompt)
	if err != nil {
		return domain.Intent{}, fmt.Errorf("%w: %w", domain.ErrIntentExtraction, err)
	}

	intent, err := parsePayload(response)
	if err != nil {
		logger.FromContext(ctx).Warn("malformed intent payload",
			zap.String("payload", truncate(response, 200)),
			zap.Error(err),
		)
		return domain.Intent{}, fmt.Errorf("%w: %w", domain.ErrIntentExtraction, err)
	}

	return intent, nil
}

// parsePayload strips the code-fence markup models like to emit and
// unmarshals the JSON object. A missing action defaults to search.
func parsePayload(response string) (domain.Intent, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var intent domain.Intent
	if err := json.Unmarshal([]byte(response), &intent); err != nil {
		return domain.Intent{}, fmt.Errorf("parse intent payload: %w", err)
	}

	if intent.Action == "" {
		intent.Action = domain.ActionSearch
	}

	return intent, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
