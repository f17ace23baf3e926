package assessment

import (
	"strings"
	"testing"
	"time"

	core "github.com/achitaan/AR-diagass/internal/assessment"
)

func TestRenderReportSections(t *testing.T) {
	severity := 8
	report := &core.Report{
		SessionInfo: core.SessionInfo{
			SessionID:       "sess-1",
			StartTime:       time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
			DurationMinutes: 12.5,
			Completion:      100,
			PriorityScore:   23,
		},
		KeyFindings: []string{"Severe pain reported (level 8/10)"},
		ClinicalData: core.ClinicalData{
			PainAssessment: core.PainAssessment{
				Severity: &severity,
				Location: []string{"lower back"},
				Quality:  []string{"sharp", "burning"},
			},
			InjuryDetails: core.InjuryDetails{
				Mechanism: []string{"lift"},
				Onset:     "started while lifting a box",
			},
		},
		Recommendations: []string{"Recommend urgent medical evaluation"},
		RedFlags:        []string{"Red flag identified: numbness in left leg..."},
		RawResponses: []core.ReportResponse{
			{Question: "How bad is the pain?", Response: "An 8 out of 10"},
		},
	}

	text := renderReport(report)

	for _, want := range []string{
		"Session: sess-1",
		"Priority score: 23",
		"Severe pain reported (level 8/10)",
		"Severity: 8/10",
		"Location: lower back",
		"Quality: sharp, burning",
		"Mechanism: lift",
		"Recommend urgent medical evaluation",
		"numbness in left leg",
		"Q: How bad is the pain?",
		"A: An 8 out of 10",
		exportDisclaimer,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRenderReportOmitsEmptySections(t *testing.T) {
	report := &core.Report{
		SessionInfo: core.SessionInfo{SessionID: "sess-2"},
	}

	text := renderReport(report)

	for _, absent := range []string{"Key Findings", "Red Flags", "Recommendations", "Interview Transcript"} {
		if strings.Contains(text, absent) {
			t.Errorf("empty section %q rendered", absent)
		}
	}
	if !strings.Contains(text, exportDisclaimer) {
		t.Error("disclaimer must always be present")
	}
}
