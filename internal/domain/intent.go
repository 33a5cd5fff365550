package domain

import (
	"bytes"
	"strconv"
)

// Action is the closed set of operations the extractor may request.
type Action string

const (
	// ActionSearch is the default filter-and-list pipeline.
	ActionSearch Action = "buscar"
	// ActionCompare is accepted but runs the search pipeline.
	ActionCompare Action = "comparar"
	// ActionBestMark returns the single best (lowest) mark for the filters.
	ActionBestMark Action = "mejor_marca"
	// ActionCountByEventYear counts distinct athletes for an event and year.
	ActionCountByEventYear Action = "contar_atletas_por_prueba_y_ano"
	// ActionCountByMark counts distinct athletes at or below a mark threshold.
	ActionCountByMark Action = "contar_atletas_por_marca"
)

// Intent is the structured representation of one user question, produced
// by the extractor and consumed by the query engine. Absent fields mean
// "do not filter on this dimension".
type Intent struct {
	Athlete   *string    `json:"atleta,omitempty"`
	Event     *string    `json:"prueba,omitempty"`
	Wind      *float64   `json:"viento,omitempty"`
	Placement *int       `json:"puesto_competicion,omitempty"`
	Year      *FlexValue `json:"ano,omitempty"`
	YearRange *FlexValue `json:"rango_anos,omitempty"`
	Team      *string    `json:"equipo,omitempty"`
	SortBy    *string    `json:"ordenar_por,omitempty"`
	MarkLimit *float64   `json:"marca_limite,omitempty"`
	Action    Action     `json:"accion,omitempty"`
}

// FlexValue holds a field the model may emit as either a JSON number or a
// numeric string. Non-numeric payloads are retained so the engine can warn
// about them instead of failing the whole extraction.
type FlexValue struct {
	raw string
}

// NewFlexValue builds a FlexValue from an integer (used by tests).
func NewFlexValue(n int) *FlexValue {
	return &FlexValue{raw: strconv.Itoa(n)}
}

// UnmarshalJSON accepts numbers and strings alike.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	v.raw = string(bytes.Trim(bytes.TrimSpace(data), `"`))
	return nil
}

// MarshalJSON re-emits the value as a JSON string.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(v.raw)), nil
}

// Int converts the value to an integer. ok=false when the payload was not
// numeric; callers skip the filter and surface a warning.
func (v FlexValue) Int() (int, bool) {
	n, err := strconv.Atoi(v.raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the raw payload for warning messages.
func (v FlexValue) String() string { return v.raw }
