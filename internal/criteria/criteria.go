// Package criteria holds user-defined acceptance bounds keyed by
// (product, result name) and their exchange and persistence forms.
package criteria

import "fmt"

// Bound is a closed acceptance interval. Values equal to either limit are
// in range.
type Bound struct {
	Lower float64
	Upper float64
}

// Key identifies the measurement a bound applies to. Matching is exact and
// case-sensitive.
type Key struct {
	Item   string
	Result string
}

// Entry is the flat exchange form used for files and the store.
type Entry struct {
	ItemNumber string  `json:"item_number"`
	ResultName string  `json:"result_name"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ConfigurationError reports a bound whose lower limit exceeds its upper
// limit. Such an entry is a caller configuration mistake and is refused
// rather than silently corrected.
type ConfigurationError struct {
	Entry Entry
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid bound for (%s, %s): lower %g > upper %g",
		e.Entry.ItemNumber, e.Entry.ResultName, e.Entry.LowerBound, e.Entry.UpperBound)
}

// Set maps (item, result) keys to bounds. It keeps insertion order so
// Entries round-trips stably. A nil *Set is a valid empty set.
type Set struct {
	bounds map[Key]Bound
	order  []Key
}

// NewSet builds a Set, refusing each entry with inverted bounds. Refused
// entries come back as ConfigurationErrors so the caller can choose to abort
// the run or drop just those criteria. A duplicate key overwrites the
// earlier bound without changing its position.
func NewSet(entries []Entry) (*Set, []*ConfigurationError) {
	s := &Set{bounds: make(map[Key]Bound, len(entries))}
	var rejected []*ConfigurationError
	for _, e := range entries {
		if e.LowerBound > e.UpperBound {
			rejected = append(rejected, &ConfigurationError{Entry: e})
			continue
		}
		k := Key{Item: e.ItemNumber, Result: e.ResultName}
		if _, ok := s.bounds[k]; !ok {
			s.order = append(s.order, k)
		}
		s.bounds[k] = Bound{Lower: e.LowerBound, Upper: e.UpperBound}
	}
	return s, rejected
}

// Lookup returns the bound for one (item, result) pair. Absence of a key
// means "not analyzed", never "always normal".
func (s *Set) Lookup(item, result string) (Bound, bool) {
	if s == nil {
		return Bound{}, false
	}
	b, ok := s.bounds[Key{Item: item, Result: result}]
	return b, ok
}

// Len reports the number of accepted criteria.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bounds)
}

// Entries returns the accepted criteria in insertion order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, 0, len(s.order))
	for _, k := range s.order {
		b := s.bounds[k]
		out = append(out, Entry{
			ItemNumber: k.Item,
			ResultName: k.Result,
			LowerBound: b.Lower,
			UpperBound: b.Upper,
		})
	}
	return out
}
