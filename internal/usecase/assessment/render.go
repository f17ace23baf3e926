package assessment

import (
	"fmt"
	"strings"

	core "github.com/achitaan/AR-diagass/internal/assessment"
)

const exportDisclaimer = "This report was generated from a guided self-assessment. " +
	"It is educational information, not a medical diagnosis. " +
	"Consult a qualified healthcare professional for clinical advice."

// renderReport flattens the structured report into plain text for the
// export formatters.
func renderReport(report *core.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", report.SessionInfo.SessionID)
	fmt.Fprintf(&b, "Started: %s\n", report.SessionInfo.StartTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Duration: %.1f minutes\n", report.SessionInfo.DurationMinutes)
	fmt.Fprintf(&b, "Completion: %.0f%%\n", report.SessionInfo.Completion)
	fmt.Fprintf(&b, "Priority score: %d\n", report.SessionInfo.PriorityScore)

	if len(report.KeyFindings) > 0 {
		b.WriteString("\nKey Findings\n")
		for _, finding := range report.KeyFindings {
			fmt.Fprintf(&b, "- %s\n", finding)
		}
	}

	if len(report.RedFlags) > 0 {
		b.WriteString("\nRed Flags\n")
		for _, flag := range report.RedFlags {
			fmt.Fprintf(&b, "- %s\n", flag)
		}
	}

	pain := report.ClinicalData.PainAssessment
	b.WriteString("\nPain Assessment\n")
	if pain.Severity != nil {
		fmt.Fprintf(&b, "- Severity: %d/10\n", *pain.Severity)
	}
	if len(pain.Location) > 0 {
		fmt.Fprintf(&b, "- Location: %s\n", strings.Join(pain.Location, ", "))
	}
	if len(pain.Quality) > 0 {
		fmt.Fprintf(&b, "- Quality: %s\n", strings.Join(pain.Quality, ", "))
	}
	if pain.Timing != "" {
		fmt.Fprintf(&b, "- Timing: %s\n", pain.Timing)
	}

	injury := report.ClinicalData.InjuryDetails
	if len(injury.Mechanism) > 0 || injury.Onset != "" {
		b.WriteString("\nInjury Details\n")
		if len(injury.Mechanism) > 0 {
			fmt.Fprintf(&b, "- Mechanism: %s\n", strings.Join(injury.Mechanism, ", "))
		}
		if injury.Onset != "" {
			fmt.Fprintf(&b, "- Onset: %s\n", injury.Onset)
		}
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\nRecommendations\n")
		for _, rec := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if len(report.RawResponses) > 0 {
		b.WriteString("\nInterview Transcript\n")
		for _, r := range report.RawResponses {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", r.Question, r.Response)
		}
	}

	b.WriteString("\n")
	b.WriteString(exportDisclaimer)
	b.WriteString("\n")

	return b.String()
}
