package dataset

import (
	"strconv"
	"strings"
)

// Record is one row of test data. Cells holds the complete original row in
// source column order; the named fields are parsed views of the required
// columns. Identity is positional: Row is the 0-based index of the row in the
// source, and records are never merged or deduplicated.
type Record struct {
	Row        int
	ItemNumber string
	TestNumber int
	ResultName string
	Response   string
	Cells      []string
}

// ResponseValue parses the raw response as a number. Non-numeric responses
// ("Yes", "No", free text, empty cells) report ok=false; they remain valid
// records but carry no value a bound could be evaluated against.
func (r Record) ResponseValue() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Response), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
