// Package query applies the structured intent to the ranking table.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kinhostella/atletismo/internal/domain"
	"github.com/kinhostella/atletismo/internal/domain/event"
	"github.com/kinhostella/atletismo/internal/domain/normalize"
)

// Service is the query engine. It is pure over the immutable table: every
// failure inside a filter degrades to an empty result or a warning, never
// an error — only the model boundary produces real errors.
type Service struct {
	resolver *event.Resolver
	now      func() time.Time
}

// New creates a query engine.
func New(resolver *event.Resolver) *Service {
	return &Service{resolver: resolver, now: time.Now}
}

// WithClock overrides the time source (used by tests for year ranges).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Execute dispatches on the intent action and returns the filtered result.
func (s *Service) Execute(intent domain.Intent, records []domain.Record) domain.Result {
	switch intent.Action {
	case domain.ActionCountByEventYear:
		return s.countByEventYear(intent, records)
	case domain.ActionCountByMark:
		return s.countByMark(intent, records)
	case domain.ActionBestMark:
		return s.bestMark(intent, records)
	default:
		// buscar, comparar, and anything unrecognized run the search pipeline.
		return s.search(intent, records)
	}
}

// countByEventYear counts distinct athletes for one event in one year.
// Both fields are required; a synonym-table miss reports no results rather
// than an error, since the count semantics depend on the exact canonical id.
func (s *Service) countByEventYear(intent domain.Intent, records []domain.Record) domain.Result {
	if intent.Event == nil || intent.Year == nil {
		return domain.Result{}
	}
	year, ok := intent.Year.Int()
	if !ok {
		return domain.Result{}
	}
	canonical, ok := s.resolver.Resolve(*intent.Event)
	if !ok {
		return domain.Result{}
	}

	var rows []domain.Record
	for _, r := range records {
		if r.EventNorm == canonical && r.Year == year {
			rows = append(rows, r)
		}
	}

	return domain.Result{Rows: rows, Count: distinctAthletes(rows), HasCount: true}
}

// countByMark counts distinct athletes at or below a mark threshold.
// Rows with unparseable marks are absent data, never passing.
func (s *Service) countByMark(intent domain.Intent, records []domain.Record) domain.Result {
	if intent.Event == nil || intent.MarkLimit == nil {
		return domain.Result{}
	}
	canonical, ok := s.resolver.Resolve(*intent.Event)
	if !ok {
		return domain.Result{}
	}

	var rows []domain.Record
	for _, r := range records {
		if r.EventNorm == canonical && r.MarkSeconds != nil && *r.MarkSeconds <= *intent.MarkLimit {
			rows = append(rows, r)
		}
	}

	return domain.Result{Rows: rows, Count: distinctAthletes(rows), HasCount: true}
}

// bestMark runs the search filters and keeps the single fastest row.
func (s *Service) bestMark(intent domain.Intent, records []domain.Record) domain.Result {
	res := s.search(intent, records)

	var best *domain.Record
	for i := range res.Rows {
		r := &res.Rows[i]
		if r.MarkSeconds == nil {
			continue
		}
		if best == nil || *r.MarkSeconds < *best.MarkSeconds {
			best = r
		}
	}
	if best == nil {
		return domain.Result{Warnings: res.Warnings}
	}
	return domain.Result{Rows: []domain.Record{*best}, Warnings: res.Warnings}
}

// search applies every present filter cumulatively, then sorts.
func (s *Service) search(intent domain.Intent, records []domain.Record) domain.Result {
	var warnings []string

	rows := records
	if intent.Athlete != nil {
		rows = filterAthlete(rows, *intent.Athlete)
	}
	if intent.Event != nil {
		rows = s.filterEvent(rows, *intent.Event)
	}
	if intent.Team != nil {
		rows = filterTeam(rows, *intent.Team)
	}
	if intent.Placement != nil {
		rows = filterPlacement(rows, *intent.Placement)
	}
	if intent.Wind != nil {
		rows = filterWind(rows, *intent.Wind)
	}
	if intent.Year != nil {
		if year, ok := intent.Year.Int(); ok {
			rows = filterYear(rows, year)
		} else {
			warnings = append(warnings,
				fmt.Sprintf("no se pudo procesar el año: %q, se ignorará este filtro", intent.Year.String()))
		}
	}
	if intent.YearRange != nil {
		if n, ok := intent.YearRange.Int(); ok {
			current := s.now().Year()
			rows = filterYearSpan(rows, current-n, current)
		} else {
			warnings = append(warnings, "no se pudo procesar el rango de años, se ignorará este filtro")
		}
	}

	rows, sortWarning := sortRows(rows, intent.SortBy)
	if sortWarning != "" {
		warnings = append(warnings, sortWarning)
	}

	return domain.Result{Rows: rows, Warnings: warnings}
}

// filterAthlete keeps rows whose normalized athlete name contains every
// whitespace token of the query, in any order. Partial and misordered
// name queries match; exact equality is not required.
func filterAthlete(records []domain.Record, athlete string) []domain.Record {
	tokens := strings.Fields(normalize.Apply(athlete))
	if len(tokens) == 0 {
		return records
	}

	var out []domain.Record
	for _, r := range records {
		match := true
		for _, tok := range tokens {
			if !strings.Contains(r.AthleteNorm, tok) {
				match = false
				break
			}
		}
		if match {
			out = append(out, r)
		}
	}
	return out
}

// filterEvent matches the resolved canonical id exactly, falling back to
// substring containment on the normalized event column for distances the
// synonym table does not cover.
func (s *Service) filterEvent(records []domain.Record, rawEvent string) []domain.Record {
	var out []domain.Record

	if canonical, ok := s.resolver.Resolve(rawEvent); ok {
		for _, r := range records {
			if r.EventNorm == canonical {
				out = append(out, r)
			}
		}
		return out
	}

	needle := normalize.Apply(rawEvent)
	for _, r := range records {
		if strings.Contains(r.EventNorm, needle) {
			out = append(out, r)
		}
	}
	return out
}

func filterTeam(records []domain.Record, team string) []domain.Record {
	needle := normalize.Apply(team)
	var out []domain.Record
	for _, r := range records {
		if strings.Contains(r.TeamNorm, needle) {
			out = append(out, r)
		}
	}
	return out
}

func filterPlacement(records []domain.Record, placement int) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Placement != nil && *r.Placement == placement {
			out = append(out, r)
		}
	}
	return out
}

func filterWind(records []domain.Record, wind float64) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Wind != nil && *r.Wind == wind {
			out = append(out, r)
		}
	}
	return out
}

func filterYear(records []domain.Record, year int) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

func filterYearSpan(records []domain.Record, from, to int) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if r.Year >= from && r.Year <= to {
			out = append(out, r)
		}
	}
	return out
}

// sortRows orders the final row set: "fecha" by date descending, "marca"
// by numeric mark ascending with unparseable marks last. Unknown sort keys
// pass through unsorted with a warning.
func sortRows(records []domain.Record, sortBy *string) ([]domain.Record, string) {
	if sortBy == nil {
		return records, ""
	}

	out := make([]domain.Record, len(records))
	copy(out, records)

	switch strings.ToLower(*sortBy) {
	case "fecha":
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Date.After(out[j].Date)
		})
		return out, ""
	case "marca":
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].MarkSeconds, out[j].MarkSeconds
			if a == nil {
				return false
			}
			if b == nil {
				return true
			}
			return *a < *b
		})
		return out, ""
	default:
		return out, fmt.Sprintf("criterio de ordenación no soportado: %q", *sortBy)
	}
}

// distinctAthletes counts unique athlete names, so repeated marks by the
// same athlete count once.
func distinctAthletes(records []domain.Record) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.Athlete] = struct{}{}
	}
	return len(seen)
}
