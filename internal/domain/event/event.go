// Package event resolves free-text event labels to canonical event ids.
package event

import (
	"strings"

	"github.com/kinhostella/atletismo/internal/domain/normalize"
)

// Synonym maps one normalized free-text label to a canonical event id as
// it appears in the source ranking (before column normalization). The
// table is a flat, auditable list so collisions are caught by a test
// instead of silently shadowing each other in a map literal.
type Synonym struct {
	Label     string
	Canonical string
}

// Synonyms covers the common sprint and middle-distance labels. The source
// data originally mapped "1500 metros lisos" to both the 800m and 1500m
// ids; the 1500m entry is kept pending confirmation from the data owner.
var Synonyms = []Synonym{
	{"100", "100 M.L. MASCULINO"},
	{"100m", "100 M.L. MASCULINO"},
	{"100 metros", "100 M.L. MASCULINO"},
	{"100 metros lisos", "100 M.L. MASCULINO"},
	{"200", "200 M.L. MASCULINO"},
	{"200m", "200 M.L. MASCULINO"},
	{"200 metros", "200 M.L. MASCULINO"},
	{"200 metros lisos", "200 M.L. MASCULINO"},
	{"400", "400 M.L. MASCULINO"},
	{"400m", "400 M.L. MASCULINO"},
	{"400 metros", "400 M.L. MASCULINO"},
	{"400 metros lisos", "400 M.L. MASCULINO"},
	{"800", "800 M.L. MASCULINO"},
	{"800m", "800 M.L. MASCULINO"},
	{"800 metros", "800 M.L. MASCULINO"},
	{"1500", "1500 M.L. MASCULINO"},
	{"1500m", "1500 M.L. MASCULINO"},
	{"1500 metros", "1500 M.L. MASCULINO"},
	{"1500 metros lisos", "1500 M.L. MASCULINO"},
}

// Resolver looks up canonical event ids for normalized labels.
type Resolver struct {
	table map[string]string
}

// NewResolver builds a resolver from the static synonym table.
func NewResolver() *Resolver {
	table := make(map[string]string, len(Synonyms))
	for _, s := range Synonyms {
		table[s.Label] = s.Canonical
	}
	return &Resolver{table: table}
}

// Resolve normalizes the raw label and looks it up in the synonym table.
// A hit is post-processed (dots removed, lower-cased) to match the
// dataset's normalized event column. On a miss ok=false; callers fall
// back to substring matching against that column, which is the intended
// degraded-match policy for distances the table does not cover.
func (r *Resolver) Resolve(raw string) (string, bool) {
	canonical, ok := r.table[normalize.Apply(raw)]
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.ReplaceAll(canonical, ".", "")), true
}
