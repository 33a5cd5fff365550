package domain

// Result is the outcome of one query: an ordered row set for search
// actions, optionally paired with a distinct-athlete count for counting
// actions. An empty row set is a valid outcome, not an error.
type Result struct {
	Rows     []Record
	Count    int
	HasCount bool
	Warnings []string
}

// Empty reports whether the query matched nothing.
func (r Result) Empty() bool { return len(r.Rows) == 0 }
