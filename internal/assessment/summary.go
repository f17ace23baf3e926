package assessment

import (
	"fmt"
	"strings"
	"time"
)

// Report is the structured assessment summary handed to export and chat
// consumers.
type Report struct {
	SessionInfo     SessionInfo      `json:"session_info"`
	KeyFindings     []string         `json:"key_findings"`
	ClinicalData    ClinicalData     `json:"clinical_data"`
	Recommendations []string         `json:"recommendations"`
	RedFlags        []string         `json:"red_flags"`
	RawResponses    []ReportResponse `json:"raw_responses"`
}

type SessionInfo struct {
	SessionID       string    `json:"session_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes float64   `json:"duration_minutes"`
	Completion      float64   `json:"completion_percentage"`
	PriorityScore   int       `json:"priority_score"`
}

// ClinicalData regroups the extracted fields into fixed clinical buckets.
// Absent fields default to their zero values.
type ClinicalData struct {
	PainAssessment   PainAssessment   `json:"pain_assessment"`
	InjuryDetails    InjuryDetails    `json:"injury_details"`
	FunctionalImpact FunctionalImpact `json:"functional_impact"`
	MedicalHistory   MedicalHistory   `json:"medical_history"`
}

type PainAssessment struct {
	Severity           *int     `json:"severity"`
	Location           []string `json:"location"`
	Quality            []string `json:"quality"`
	Timing             string   `json:"timing"`
	AggravatingFactors string   `json:"aggravating_factors"`
	RelievingFactors   string   `json:"relieving_factors"`
}

type InjuryDetails struct {
	Mechanism         []string `json:"mechanism"`
	Onset             string   `json:"onset"`
	ImmediateSymptoms string   `json:"immediate_symptoms"`
}

type FunctionalImpact struct {
	Limitations      string `json:"limitations"`
	WorkImpact       string `json:"work_impact"`
	SleepDisturbance string `json:"sleep_disturbance"`
}

type MedicalHistory struct {
	PreviousInjuries  string `json:"previous_injuries"`
	MedicalConditions string `json:"medical_conditions"`
	Medications       string `json:"medications"`
}

type ReportResponse struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

func buildReport(bank *Bank, rules *RuleSet, s *session) *Report {
	report := &Report{
		SessionInfo: SessionInfo{
			SessionID:       s.sessionID,
			StartTime:       s.startTime,
			DurationMinutes: time.Since(s.startTime).Minutes(),
			Completion:      s.completion,
			PriorityScore:   s.priority,
		},
		KeyFindings:     keyFindings(s),
		ClinicalData:    clinicalData(s),
		Recommendations: recommendations(s),
		RedFlags:        redFlags(rules, s),
	}

	for _, r := range s.responses {
		text := "Unknown question"
		if q, ok := bank.QuestionByID(r.QuestionID); ok {
			text = q.Text
		}
		report.RawResponses = append(report.RawResponses, ReportResponse{
			Question:  text,
			Response:  r.Response,
			Timestamp: r.Timestamp,
		})
	}

	return report
}

func keyFindings(s *session) []string {
	var findings []string

	if level, ok := painLevel(s.extracted); ok {
		switch {
		case level >= 8:
			findings = append(findings, fmt.Sprintf("Severe pain reported (level %d/10)", level))
		case level >= 5:
			findings = append(findings, fmt.Sprintf("Moderate pain reported (level %d/10)", level))
		}
	}

	if regions := stringList(s.extracted["affected_body_regions"]); len(regions) > 0 {
		findings = append(findings, "Pain affecting: "+strings.Join(regions, ", "))
	}

	if descriptors := stringList(s.extracted["pain_descriptors"]); len(descriptors) > 0 {
		findings = append(findings, "Pain quality: "+strings.Join(descriptors, ", "))
	}

	if s.priority > 15 {
		findings = append(findings, "High priority case - multiple concerning features")
	}

	return findings
}

func clinicalData(s *session) ClinicalData {
	data := s.extracted

	var severity *int
	if level, ok := painLevel(data); ok {
		severity = &level
	}

	return ClinicalData{
		PainAssessment: PainAssessment{
			Severity:           severity,
			Location:           stringList(data["affected_body_regions"]),
			Quality:            stringList(data["pain_descriptors"]),
			Timing:             rawField(data, "pain_frequency_raw"),
			AggravatingFactors: rawField(data, "aggravating_factors_raw"),
			RelievingFactors:   rawField(data, "relieving_factors_raw"),
		},
		InjuryDetails: InjuryDetails{
			Mechanism:         stringList(data["injury_mechanisms"]),
			Onset:             rawField(data, "onset_timeline_raw"),
			ImmediateSymptoms: rawField(data, "immediate_symptoms_raw"),
		},
		FunctionalImpact: FunctionalImpact{
			Limitations:      rawField(data, "functional_limitations_raw"),
			WorkImpact:       rawField(data, "work_impact_raw"),
			SleepDisturbance: rawField(data, "sleep_disturbance_raw"),
		},
		MedicalHistory: MedicalHistory{
			PreviousInjuries:  rawField(data, "injury_history_raw"),
			MedicalConditions: rawField(data, "medical_conditions_raw"),
			Medications:       rawField(data, "current_medications_raw"),
		},
	}
}

func recommendations(s *session) []string {
	var recs []string

	switch {
	case s.priority > 20:
		recs = append(recs, "Recommend urgent medical evaluation")
	case s.priority > 10:
		recs = append(recs, "Recommend medical evaluation within 24-48 hours")
	}

	if level, ok := painLevel(s.extracted); ok && level >= 7 {
		recs = append(recs, "Consider pain management strategies")
	}

	for _, desc := range stringList(s.extracted["pain_descriptors"]) {
		if desc == "burning" || desc == "tingling" {
			recs = append(recs, "Neurological evaluation may be warranted")
			break
		}
	}

	return recs
}

// redFlags rescans every stored response against the red-flag keyword list.
// Overlapping responses can produce duplicate flags; the output is not
// deduplicated.
func redFlags(rules *RuleSet, s *session) []string {
	var flags []string
	for _, r := range s.responses {
		if containsAny(strings.ToLower(r.Response), rules.RedFlags) {
			excerpt := r.Response
			if len(excerpt) > 100 {
				excerpt = excerpt[:100]
			}
			flags = append(flags, "Red flag identified: "+excerpt+"...")
		}
	}
	return flags
}

func painLevel(data map[string]any) (int, bool) {
	switch v := data["pain_level_current"].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	}
	return 0, false
}

func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func rawField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}
