// Package ranking loads the semicolon-delimited ranking dataset into an
// immutable in-memory table.
package ranking

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kinhostella/atletismo/internal/domain"
	"github.com/kinhostella/atletismo/internal/domain/mark"
	"github.com/kinhostella/atletismo/internal/domain/normalize"
)

const dateLayout = "02/01/2006"

// Table is the loaded dataset. It is read-only for the lifetime of the
// process, so it is shared across queries without locking.
type Table struct {
	records []domain.Record
}

// Records returns the loaded rows. Callers must not mutate them.
func (t *Table) Records() []domain.Record { return t.records }

// Len returns the number of loaded rows.
func (t *Table) Len() int { return len(t.records) }

// Load reads and parses the dataset file.
func Load(path string) (*Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataLoad, path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads semicolon-delimited UTF-8 rows. Entirely blank rows and rows
// missing athlete, event, or mark are dropped; a date that does not match
// DD/MM/YYYY fails the whole load.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrDataLoad, err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"Atleta", "Equipo", "Prueba", "Marca", "Ano", "Fecha"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrDataLoad, required)
		}
	}

	var records []domain.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrDataLoad, line, err)
		}

		if blankRow(row) {
			continue
		}

		rec, err := buildRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrDataLoad, line, err)
		}
		if rec == nil {
			continue // required field missing, row dropped
		}
		records = append(records, *rec)
	}

	return &Table{records: records}, nil
}

// buildRecord converts one CSV row. Returns (nil, nil) for rows that must
// be dropped rather than failing the load.
func buildRecord(row []string, cols map[string]int) (*domain.Record, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	athlete := field("Atleta")
	eventName := field("Prueba")
	rawMark := field("Marca")
	if athlete == "" || eventName == "" || rawMark == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(field("Ano"))
	if err != nil {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, field("Fecha"))
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", field("Fecha"), err)
	}

	rec := domain.Record{
		Athlete:     athlete,
		Team:        field("Equipo"),
		Event:       eventName,
		Mark:        rawMark,
		Year:        year,
		Date:        date,
		AthleteNorm: normalize.Apply(athlete),
		TeamNorm:    normalize.Apply(field("Equipo")),
		EventNorm:   normalize.Apply(eventName),
	}

	if secs, ok := mark.Parse(rawMark); ok {
		rec.MarkSeconds = &secs
	}
	if p, err := strconv.Atoi(field("Puesto")); err == nil {
		rec.Placement = &p
	}
	if w, err := strconv.ParseFloat(field("Viento"), 64); err == nil {
		rec.Wind = &w
	}

	return &rec, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
