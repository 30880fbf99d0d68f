package detect

import (
	"context"
	"testing"

	"github.com/KaramelBytes/testlens-cli/internal/criteria"
	"github.com/KaramelBytes/testlens-cli/internal/dataset"
)

func warpRecords(responses ...string) []dataset.Record {
	recs := make([]dataset.Record, len(responses))
	for i, resp := range responses {
		recs[i] = dataset.Record{
			Row:        i,
			ItemNumber: "A001",
			TestNumber: 100,
			ResultName: "Dim Stab Warp",
			Response:   resp,
			Cells:      []string{"A001", "100", "Dim Stab Warp", resp},
		}
	}
	return recs
}

func warpSet(t *testing.T, lower, upper float64) *criteria.Set {
	t.Helper()
	set, rejected := criteria.NewSet([]criteria.Entry{
		{ItemNumber: "A001", ResultName: "Dim Stab Warp", LowerBound: lower, UpperBound: upper},
	})
	if len(rejected) != 0 {
		t.Fatalf("unexpected rejections: %v", rejected)
	}
	return set
}

func TestClassifyBounds(t *testing.T) {
	set := warpSet(t, -4.75, -2.75)
	got, err := Classify(context.Background(), warpRecords("-5.0", "-3.0", "-2.75"), set)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := []Status{StatusAbnormal, StatusNormal, StatusNormal}
	for i, c := range got {
		if c.Status != want[i] {
			t.Fatalf("record %d status = %s, want %s", i, c.Status, want[i])
		}
		if c.Lower == nil || c.Upper == nil || *c.Lower != -4.75 || *c.Upper != -2.75 {
			t.Fatalf("record %d bounds = %v/%v", i, c.Lower, c.Upper)
		}
	}
}

func TestClassifyBoundaryValuesAreNormal(t *testing.T) {
	set := warpSet(t, -4.75, -2.75)
	got, err := Classify(context.Background(), warpRecords("-4.75", "-2.75", "-4.7500001", "-2.7499999"), set)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	want := []Status{StatusNormal, StatusNormal, StatusAbnormal, StatusAbnormal}
	for i, c := range got {
		if c.Status != want[i] {
			t.Fatalf("record %d (%s) status = %s, want %s", i, c.Response, c.Status, want[i])
		}
	}
}

func TestClassifyNoCriteria(t *testing.T) {
	got, err := Classify(context.Background(), warpRecords("-5.0", "-3.0", "-2.75"), nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i, c := range got {
		if c.Status != StatusNotAnalyzed {
			t.Fatalf("record %d status = %s, want NOT_ANALYZED", i, c.Status)
		}
		if c.Lower != nil || c.Upper != nil {
			t.Fatalf("record %d should carry no bounds", i)
		}
	}
}

func TestClassifyUnknownKeyNotAnalyzed(t *testing.T) {
	set := warpSet(t, -4.75, -2.75)
	recs := []dataset.Record{{ItemNumber: "B002", ResultName: "Dim Stab Warp", Response: "-3.0"}}
	got, err := Classify(context.Background(), recs, set)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got[0].Status != StatusNotAnalyzed || got[0].Lower != nil {
		t.Fatalf("unmatched item must be NOT_ANALYZED without bounds: %+v", got[0])
	}
}

func TestClassifyNonNumericResponseKeepsBounds(t *testing.T) {
	set := warpSet(t, -4.75, -2.75)
	got, err := Classify(context.Background(), warpRecords("Yes", ""), set)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	for i, c := range got {
		if c.Status != StatusNotAnalyzed {
			t.Fatalf("record %d status = %s, want NOT_ANALYZED", i, c.Status)
		}
		// Bounds are recorded for display even though no comparison ran.
		if c.Lower == nil || c.Upper == nil {
			t.Fatalf("record %d should keep its bounds for display", i)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	set := warpSet(t, -4.75, -2.75)
	recs := warpRecords("-5.0", "-3.0", "Yes")
	first, err := Classify(context.Background(), recs, set)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	again := make([]dataset.Record, len(first))
	for i, c := range first {
		again[i] = c.Record
	}
	second, err := Classify(context.Background(), again, set)
	if err != nil {
		t.Fatalf("Classify again: %v", err)
	}
	for i := range first {
		if first[i].Status != second[i].Status {
			t.Fatalf("record %d status changed on re-classification: %s vs %s", i, first[i].Status, second[i].Status)
		}
	}
}

func TestClassifyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := Classify(ctx, warpRecords("-5.0"), warpSet(t, -4.75, -2.75))
	if err == nil {
		t.Fatalf("expected context error")
	}
	if got != nil {
		t.Fatalf("partial results must be discarded, got %v", got)
	}
}

func TestStatusStrings(t *testing.T) {
	if StatusNormal.String() != "NORMAL" || StatusAbnormal.String() != "ABNORMAL" || StatusNotAnalyzed.String() != "NOT_ANALYZED" {
		t.Fatalf("status strings: %s %s %s", StatusNormal, StatusAbnormal, StatusNotAnalyzed)
	}
}
