package domain

import "time"

// Record is one row of the ranking dataset. Records are immutable after
// load; the normalized columns and the numeric mark are computed once by
// the repository and cached for the record's lifetime.
type Record struct {
	Athlete   string
	Team      string
	Event     string
	Mark      string
	Year      int
	Date      time.Time
	Placement *int
	Wind      *float64

	// Derived at load time.
	AthleteNorm string
	TeamNorm    string
	EventNorm   string
	MarkSeconds *float64 // nil when the raw mark is unparseable
}
