package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kinhostella/atletismo/internal/domain"
)

type mockInterpreter struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockInterpreter) Interpret(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.response, m.err
}

func TestExtract_PlainJSON(t *testing.T) {
	llm := &mockInterpreter{response: `{"atleta":"Jose Perez","prueba":"100 metros lisos","rango_anos":5,"ordenar_por":"fecha"}`}
	svc := New(llm)

	intent, err := svc.Extract(context.Background(), "resultados de José Pérez")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Athlete == nil || *intent.Athlete != "Jose Perez" {
		t.Errorf("athlete = %v", intent.Athlete)
	}
	if intent.Action != domain.ActionSearch {
		t.Errorf("expected default action buscar, got %q", intent.Action)
	}
}

func TestExtract_QuestionNormalizedInPrompt(t *testing.T) {
	llm := &mockInterpreter{response: `{}`}
	svc := New(llm)

	if _, err := svc.Extract(context.Background(), "¿Resultados de José Pérez?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.lastPrompt, "jose perez") {
		t.Errorf("prompt should carry the normalized question, got %q", llm.lastPrompt)
	}
	if strings.Contains(llm.lastPrompt, "José") {
		t.Error("prompt should not carry accented question text")
	}
}

func TestExtract_StripsCodeFences(t *testing.T) {
	llm := &mockInterpreter{response: "```json\n{\"prueba\":\"100m\",\"ano\":2024,\"accion\":\"contar_atletas_por_prueba_y_ano\"}\n```"}
	svc := New(llm)

	intent, err := svc.Extract(context.Background(), "cuantos atletas han corrido el 100m en 2024?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.Action != domain.ActionCountByEventYear {
		t.Errorf("action = %q", intent.Action)
	}
	if n, ok := intent.Year.Int(); !ok || n != 2024 {
		t.Errorf("year = %d (ok=%v)", n, ok)
	}
}

func TestExtract_MalformedPayload(t *testing.T) {
	llm := &mockInterpreter{response: "sorry, I cannot help with that"}
	svc := New(llm)

	_, err := svc.Extract(context.Background(), "pregunta")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrIntentExtraction) {
		t.Errorf("expected ErrIntentExtraction, got %v", err)
	}
}

func TestExtract_TransportError(t *testing.T) {
	llm := &mockInterpreter{err: errors.New("connection refused")}
	svc := New(llm)

	_, err := svc.Extract(context.Background(), "pregunta")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrIntentExtraction) {
		t.Errorf("expected ErrIntentExtraction, got %v", err)
	}
}
