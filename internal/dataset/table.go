package dataset

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Required column names in the input header, case-sensitive.
const (
	ColItemNumber = "ITEM_NUMBER"
	ColTestNumber = "TEST_NUMBER"
	ColResultName = "RESULT_NAME"
	ColResponse   = "RESPONSE"
)

var requiredColumns = []string{ColItemNumber, ColTestNumber, ColResultName, ColResponse}

// DefaultExcludedResults lists the summary-style result names that are
// skipped when enumerating analyzable measurement types.
var DefaultExcludedResults = []string{
	"Ave Dim Stab Warp",
	"Std Dim Stab Warp",
	"Ave Dim Stab Fill",
	"Std Dim Stab Fill",
	"Test Complete?",
}

// SchemaError reports the required columns absent from an input header.
// Loading fails as a whole; there is no partial load.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Table is the immutable in-memory form of one uploaded dataset. A new load
// replaces it wholesale; nothing mutates it afterwards.
type Table struct {
	Header  []string
	Records []Record
}

// Load validates the header and materializes records in source order. Rows
// shorter than the header are padded so passthrough columns stay aligned for
// round-trip export.
func Load(header []string, rows [][]string) (*Table, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := idx[h]; !ok {
			idx[h] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	t := &Table{
		Header:  append([]string(nil), header...),
		Records: make([]Record, 0, len(rows)),
	}
	for i, row := range rows {
		cells := make([]string, len(header))
		copy(cells, row)
		rec := Record{
			Row:        i,
			ItemNumber: cells[idx[ColItemNumber]],
			ResultName: cells[idx[ColResultName]],
			Response:   cells[idx[ColResponse]],
			Cells:      cells,
		}
		// xlsx readers surface integers as "100" or "100.0" depending on
		// cell formatting; cast handles both.
		if n, err := cast.ToIntE(strings.TrimSpace(cells[idx[ColTestNumber]])); err == nil {
			rec.TestNumber = n
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// Items returns the distinct ITEM_NUMBER values in first-seen order.
func (t *Table) Items() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		if r.ItemNumber == "" || seen[r.ItemNumber] {
			continue
		}
		seen[r.ItemNumber] = true
		out = append(out, r.ItemNumber)
	}
	return out
}

// ResultNames returns the distinct RESULT_NAME values minus the exclusion
// list, in first-seen order. A nil exclusion list means
// DefaultExcludedResults; pass an empty slice to exclude nothing.
func (t *Table) ResultNames(excluding []string) []string {
	if excluding == nil {
		excluding = DefaultExcludedResults
	}
	skip := make(map[string]bool, len(excluding))
	for _, name := range excluding {
		skip[name] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Records {
		if r.ResultName == "" || seen[r.ResultName] || skip[r.ResultName] {
			continue
		}
		seen[r.ResultName] = true
		out = append(out, r.ResultName)
	}
	return out
}

// ValueRange returns the min and max numeric response for one
// (item, result name) pair. ok is false when no numeric responses exist for
// the pair; non-numeric responses are skipped, not errors.
func (t *Table) ValueRange(item, result string) (min, max float64, ok bool) {
	for _, r := range t.Records {
		if r.ItemNumber != item || r.ResultName != result {
			continue
		}
		v, numeric := r.ResponseValue()
		if !numeric {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

// FilterByItems returns the subsequence of records whose ITEM_NUMBER is in
// items, preserving source row order. An empty selection yields no records.
func (t *Table) FilterByItems(items []string) []Record {
	want := make(map[string]bool, len(items))
	for _, it := range items {
		want[it] = true
	}
	var out []Record
	for _, r := range t.Records {
		if want[r.ItemNumber] {
			out = append(out, r)
		}
	}
	return out
}

// Stats summarizes the loaded dataset for display.
type Stats struct {
	Rows     int
	Items    int
	Sessions int
}

// Stats counts rows, distinct products and distinct test sessions.
func (t *Table) Stats() Stats {
	items := make(map[string]bool)
	sessions := make(map[int]bool)
	for _, r := range t.Records {
		items[r.ItemNumber] = true
		sessions[r.TestNumber] = true
	}
	return Stats{Rows: len(t.Records), Items: len(items), Sessions: len(sessions)}
}
