package atletismo

import (
	"context"
	"errors"
	"strings"
	"testing"

	askuc "github.com/kinhostella/atletismo/internal/usecase/ask"
	healthuc "github.com/kinhostella/atletismo/internal/usecase/health"
)

type mockAsk struct {
	fn func(ctx context.Context, question string) (askuc.Answer, error)
}

func (m *mockAsk) Ask(ctx context.Context, question string) (askuc.Answer, error) {
	return m.fn(ctx, question)
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), WithDataset("ranking.csv"))
	if err == nil || !strings.Contains(err.Error(), "api key") {
		t.Fatalf("expected api key error, got %v", err)
	}
}

func TestNew_RequiresDataset(t *testing.T) {
	_, err := New(context.Background(), WithModel("key", "", ""))
	if err == nil || !strings.Contains(err.Error(), "dataset") {
		t.Fatalf("expected dataset error, got %v", err)
	}
}

func TestNew_DatasetReader(t *testing.T) {
	csv := "Atleta;Equipo;Prueba;Marca;Ano;Fecha\nJose Perez;Celta;100 M.L. MASCULINO;11.20;2024;01/05/2024\n"
	client, err := New(context.Background(),
		WithModel("key", "", ""),
		WithDatasetReader(strings.NewReader(csv)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()

	if client.askSvc == nil || client.healthSvc == nil {
		t.Error("pipeline not wired")
	}
}

func TestAsk_Forwarded(t *testing.T) {
	client := &Client{
		askSvc: &mockAsk{fn: func(_ context.Context, question string) (askuc.Answer, error) {
			if question != "¿marca de Jose Perez?" {
				t.Errorf("unexpected question: %q", question)
			}
			return askuc.Answer{Text: "11.20", Warnings: []string{"aviso"}}, nil
		}},
	}

	answer, err := client.Ask(context.Background(), "¿marca de Jose Perez?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer.Text != "11.20" {
		t.Errorf("unexpected answer: %q", answer.Text)
	}
	if len(answer.Warnings) != 1 {
		t.Errorf("warnings lost: %v", answer.Warnings)
	}
}

func TestAsk_ErrorWrapped(t *testing.T) {
	client := &Client{
		askSvc: &mockAsk{fn: func(context.Context, string) (askuc.Answer, error) {
			return askuc.Answer{}, ErrIntentExtraction
		}},
	}

	_, err := client.Ask(context.Background(), "pregunta")
	if !errors.Is(err, ErrIntentExtraction) {
		t.Fatalf("expected ErrIntentExtraction, got %v", err)
	}
}

func TestHealth_Mapped(t *testing.T) {
	client := &Client{
		healthSvc: &mockHealth{report: healthuc.Report{
			Status: healthuc.Degraded,
			Checks: map[string]healthuc.CheckResult{
				"dataset": healthuc.CheckOK,
				"model":   healthuc.CheckError,
			},
		}},
	}

	status := client.Health(context.Background())
	if status.Status != "degraded" {
		t.Errorf("status: got %q, want degraded", status.Status)
	}
	if status.Checks["model"] != "error" {
		t.Errorf("model check: got %q, want error", status.Checks["model"])
	}
}
