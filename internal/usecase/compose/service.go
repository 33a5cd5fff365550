// Package compose turns a filtered result into the final answer text.
package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kinhostella/atletismo/internal/domain"
)

// NoResultsMessage is returned for empty results without a model call.
const NoResultsMessage = "Lo siento, no pude encontrar resultados para esa consulta. Por favor, reformula tu pregunta."

const answerPrompt = `Basado en los siguientes datos de un ranking de atletismo, genera una respuesta amigable en lenguaje natural para el usuario.

Datos:
%s

Pregunta original del usuario: "%s"
`

// Summarizer is the model boundary for answer composition.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// Service composes natural-language answers.
type Service struct {
	llm Summarizer
}

// New creates a composition service.
func New(llm Summarizer) *Service {
	return &Service{llm: llm}
}

// Compose serializes the result rows (and count, when present) and asks
// the model for a natural-language answer. Empty results short-circuit to
// the canned message: no round trip, and nothing for the model to
// hallucinate about.
func (s *Service) Compose(ctx context.Context, result domain.Result, question string) (string, error) {
	if result.Empty() {
		return NoResultsMessage, nil
	}

	prompt := fmt.Sprintf(answerPrompt, renderResult(result), question)

	answer, err := s.llm.Summarize(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrComposer, err)
	}
	return answer, nil
}

// renderResult writes the rows as compact semicolon-separated lines, the
// same shape as the source dataset, so the model sees familiar columns.
func renderResult(result domain.Result) string {
	var b strings.Builder

	b.WriteString("Atleta;Equipo;Prueba;Marca;Ano;Fecha;Puesto;Viento\n")
	for _, r := range result.Rows {
		b.WriteString(r.Athlete)
		b.WriteByte(';')
		b.WriteString(r.Team)
		b.WriteByte(';')
		b.WriteString(r.Event)
		b.WriteByte(';')
		b.WriteString(r.Mark)
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(r.Year))
		b.WriteByte(';')
		b.WriteString(r.Date.Format("02/01/2006"))
		b.WriteByte(';')
		if r.Placement != nil {
			b.WriteString(strconv.Itoa(*r.Placement))
		}
		b.WriteByte(';')
		if r.Wind != nil {
			b.WriteString(strconv.FormatFloat(*r.Wind, 'f', -1, 64))
		}
		b.WriteByte('\n')
	}

	if result.HasCount {
		fmt.Fprintf(&b, "\nAtletas distintos: %d\n", result.Count)
	}

	return b.String()
}
