package detect

import (
	"fmt"
	"strings"
)

// Markdown renders a compact summary suitable for terminal output or a saved
// report.
func (s *Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[ANALYSIS SUMMARY]\n")
	if s.RunID != "" {
		b.WriteString(fmt.Sprintf("Run: %s\n", s.RunID))
	}
	b.WriteString(fmt.Sprintf("Total: %d (normal %d, abnormal %d, not analyzed %d)\n",
		s.Total, s.Normal, s.Abnormal, s.NotAnalyzed))
	b.WriteString(fmt.Sprintf("Abnormal: %.1f%% of analyzed\n", s.AbnormalPct))

	if len(s.ByResult) > 0 {
		b.WriteString("\n[ABNORMAL BY RESULT]\n")
		for _, rc := range s.ByResult {
			b.WriteString(fmt.Sprintf("- %s: %d\n", rc.ResultName, rc.Abnormal))
		}
	}
	if len(s.Sessions) > 0 {
		b.WriteString("\n[AFFECTED SESSIONS]\n")
		for _, g := range s.Sessions {
			b.WriteString(fmt.Sprintf("- test %d: %d abnormal (%s)\n",
				g.TestNumber, g.Abnormal, strings.Join(g.ResultNames, ", ")))
		}
	}
	if s.Total > 0 && s.Abnormal == 0 {
		b.WriteString("\nNo anomalies detected.\n")
	}
	return b.String()
}
