// Package mark converts raw time marks into comparable seconds.
package mark

import (
	"strconv"
	"strings"
)

// Parse converts a time mark ("10.50" or "1:02.30") into seconds.
// Marks with a colon are minutes:seconds; anything that fails numeric
// conversion reports ok=false. Callers treat unparseable marks as absent
// data and exclude them from threshold comparisons.
func Parse(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if !strings.Contains(raw, ":") {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return secs, true
	}

	minsPart, secsPart, _ := strings.Cut(raw, ":")
	if strings.Contains(secsPart, ":") {
		return 0, false
	}
	mins, err := strconv.ParseFloat(minsPart, 64)
	if err != nil {
		return 0, false
	}
	secs, err := strconv.ParseFloat(secsPart, 64)
	if err != nil {
		return 0, false
	}
	return mins*60 + secs, true
}
