package detect

import (
	"slices"
	"sort"

	"github.com/google/uuid"
)

// ResultCount is the abnormal tally for one measurement type.
type ResultCount struct {
	ResultName string `json:"result_name"`
	Abnormal   int    `json:"abnormal"`
}

// SessionGroup describes one test session with at least one abnormal record.
// ResultNames lists the distinct measurement types responsible, in first-seen
// order.
type SessionGroup struct {
	TestNumber  int      `json:"test_number"`
	Abnormal    int      `json:"abnormal"`
	ResultNames []string `json:"result_names"`
}

// Summary aggregates a classified record sequence. AbnormalPct is the share
// of abnormal records among analyzed ones (normal + abnormal); NOT_ANALYZED
// records count toward Total only.
type Summary struct {
	RunID       string         `json:"run_id,omitempty"`
	Total       int            `json:"total"`
	Normal      int            `json:"normal"`
	Abnormal    int            `json:"abnormal"`
	NotAnalyzed int            `json:"not_analyzed"`
	AbnormalPct float64        `json:"abnormal_pct"`
	ByResult    []ResultCount  `json:"by_result,omitempty"`
	Sessions    []SessionGroup `json:"sessions,omitempty"`
}

// NewRunID returns a fresh identifier for one analysis run.
func NewRunID() string {
	return uuid.NewString()
}

// Summarize reduces classified records in a single linear pass. Breakdowns
// sort descending by abnormal count with ties kept in first-seen order;
// sessions with zero abnormal records are omitted entirely.
func Summarize(classified []Classified) *Summary {
	s := &Summary{}
	resIdx := make(map[string]int)
	sesIdx := make(map[int]int)

	for _, c := range classified {
		s.Total++
		switch c.Status {
		case StatusNormal:
			s.Normal++
		case StatusAbnormal:
			s.Abnormal++
			i, ok := resIdx[c.ResultName]
			if !ok {
				i = len(s.ByResult)
				resIdx[c.ResultName] = i
				s.ByResult = append(s.ByResult, ResultCount{ResultName: c.ResultName})
			}
			s.ByResult[i].Abnormal++

			j, ok := sesIdx[c.TestNumber]
			if !ok {
				j = len(s.Sessions)
				sesIdx[c.TestNumber] = j
				s.Sessions = append(s.Sessions, SessionGroup{TestNumber: c.TestNumber})
			}
			g := &s.Sessions[j]
			g.Abnormal++
			if !slices.Contains(g.ResultNames, c.ResultName) {
				g.ResultNames = append(g.ResultNames, c.ResultName)
			}
		default:
			s.NotAnalyzed++
		}
	}

	if analyzed := s.Normal + s.Abnormal; analyzed > 0 {
		s.AbnormalPct = float64(s.Abnormal) / float64(analyzed) * 100
	}
	sort.SliceStable(s.ByResult, func(i, j int) bool {
		return s.ByResult[i].Abnormal > s.ByResult[j].Abnormal
	})
	sort.SliceStable(s.Sessions, func(i, j int) bool {
		return s.Sessions[i].Abnormal > s.Sessions[j].Abnormal
	})
	return s
}
