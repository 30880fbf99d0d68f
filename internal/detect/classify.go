// Package detect classifies test records against acceptance bounds and
// aggregates the results.
package detect

import (
	"context"

	"github.com/KaramelBytes/testlens-cli/internal/criteria"
	"github.com/KaramelBytes/testlens-cli/internal/dataset"
)

// Status classifies one measurement against its bound. A measurement with no
// applicable bound, or a non-numeric response, is NOT_ANALYZED — deliberately
// distinct from NORMAL.
type Status int

const (
	StatusNotAnalyzed Status = iota
	StatusNormal
	StatusAbnormal
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "NORMAL"
	case StatusAbnormal:
		return "ABNORMAL"
	default:
		return "NOT_ANALYZED"
	}
}

// Classified is a record with its evaluated bound and status attached. Lower
// and Upper are nil when no bound applied; when a bound exists but the
// response is non-numeric they are populated for display even though the
// status stays NOT_ANALYZED.
type Classified struct {
	dataset.Record
	Lower  *float64
	Upper  *float64
	Status Status
}

// Classify evaluates every record against the criteria set, in order.
//
// It is a pure function of (records, set): prior derived state never leaks
// in, so re-classifying already-classified input yields identical statuses.
// Bound comparison is inclusive at both ends — a response exactly equal to
// either limit is NORMAL. A nil set classifies everything NOT_ANALYZED;
// that is a valid operating mode, not an error.
//
// Cancellation is honored at record boundaries: on a done context the
// partial slice is discarded and ctx.Err() returned.
func Classify(ctx context.Context, records []dataset.Record, set *criteria.Set) ([]Classified, error) {
	out := make([]Classified, 0, len(records))
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := Classified{Record: rec}
		b, ok := set.Lookup(rec.ItemNumber, rec.ResultName)
		if !ok {
			out = append(out, c)
			continue
		}
		lo, hi := b.Lower, b.Upper
		c.Lower, c.Upper = &lo, &hi
		if v, numeric := rec.ResponseValue(); numeric {
			if v < b.Lower || v > b.Upper {
				c.Status = StatusAbnormal
			} else {
				c.Status = StatusNormal
			}
		}
		out = append(out, c)
	}
	return out, nil
}
