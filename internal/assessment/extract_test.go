package assessment

import (
	"strings"
	"testing"
)

func mustQuestion(t *testing.T, id string) Question {
	t.Helper()
	q, ok := NewBank().QuestionByID(id)
	if !ok {
		t.Fatalf("question %s not in bank", id)
	}
	return q
}

func TestExtractSeverityInteger(t *testing.T) {
	rules := DefaultRules()
	q := mustQuestion(t, "pain_severity")

	extracted := extractDataPoints(rules, q, "I'd say it's an 8 out of 10 right now")

	level, ok := extracted["pain_level_current"].(int)
	if !ok {
		t.Fatal("pain_level_current not extracted")
	}
	if level != 8 {
		t.Errorf("expected level 8, got %d", level)
	}
}

func TestExtractBodyRegions(t *testing.T) {
	rules := DefaultRules()
	q := mustQuestion(t, "pain_location")

	extracted := extractDataPoints(rules, q, "The pain is in my lower back and goes down my leg")

	regions, ok := extracted["affected_body_regions"].([]string)
	if !ok {
		t.Fatal("affected_body_regions not extracted")
	}
	found := false
	for _, r := range regions {
		if r == "back" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'back' among regions, got %v", regions)
	}
}

func TestExtractStoresRawDataPoints(t *testing.T) {
	rules := DefaultRules()
	q := mustQuestion(t, "pain_chief_complaint")

	response := "I have severe lower back pain that started yesterday"
	extracted := extractDataPoints(rules, q, response)

	raw, ok := extracted["chief_complaint_raw"].(string)
	if !ok {
		t.Fatal("chief_complaint_raw not stored")
	}
	if raw != response {
		t.Errorf("raw response altered: %q", raw)
	}

	for _, dp := range q.DataPoints {
		if _, ok := extracted[dp+"_raw"]; !ok {
			t.Errorf("data point %s_raw missing", dp)
		}
	}
}

func TestScoreHighAndMediumUrgencyExclusive(t *testing.T) {
	rules := DefaultRules()

	// "severe" (high) and "swelling" (medium) together must only count high.
	score := scoreResponse(rules, "pain_quality", "severe pain with some swelling")
	if score != highUrgencyIncrement {
		t.Errorf("expected %d, got %d", highUrgencyIncrement, score)
	}

	score = scoreResponse(rules, "pain_quality", "there is some swelling and bruising")
	if score != mediumUrgencyIncrement {
		t.Errorf("expected %d, got %d", mediumUrgencyIncrement, score)
	}

	score = scoreResponse(rules, "pain_quality", "it aches a little in the morning")
	if score != 0 {
		t.Errorf("expected 0, got %d", score)
	}
}

func TestScoreRecentOnsetStacksOnChiefComplaint(t *testing.T) {
	rules := DefaultRules()

	score := scoreResponse(rules, "pain_chief_complaint", "I have severe lower back pain that started yesterday")
	if score != highUrgencyIncrement+recentOnsetIncrement {
		t.Errorf("expected %d, got %d", highUrgencyIncrement+recentOnsetIncrement, score)
	}

	// Recency only applies to the chief complaint question.
	score = scoreResponse(rules, "pain_timing", "it got severe yesterday")
	if score != highUrgencyIncrement {
		t.Errorf("expected %d, got %d", highUrgencyIncrement, score)
	}
}

func TestFollowUpShortResponse(t *testing.T) {
	rules := DefaultRules()
	q := mustQuestion(t, "pain_quality")

	followUp := followUpFor(rules, q, "it hurts")
	if followUp != genericFollowUp {
		t.Errorf("expected generic follow-up for terse answer, got %q", followUp)
	}
}

func TestFollowUpAdaptiveCases(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		questionID string
		response   string
		fragment   string
	}{
		{"pain_severity", "it is a 10 honestly the worst", "this severe before"},
		{"pain_location", "mostly in my back near the spine", "lower back, middle back, or upper back"},
		{"injury_mechanism", "I fell down the stairs at home", "quite a fall"},
	}

	for _, tt := range tests {
		q := mustQuestion(t, tt.questionID)
		followUp := followUpFor(rules, q, tt.response)
		if !strings.Contains(followUp, tt.fragment) {
			t.Errorf("%s: expected adaptive follow-up containing %q, got %q", tt.questionID, tt.fragment, followUp)
		}
	}
}

func TestFollowUpFallsBackToDeclaredList(t *testing.T) {
	rules := DefaultRules()
	q := mustQuestion(t, "daily_activities")

	followUp := followUpFor(rules, q, "I cannot carry groceries anymore since last month")
	if followUp != q.FollowUps[0] {
		t.Errorf("expected first declared follow-up, got %q", followUp)
	}
}

func TestLoadRulesMissingFileFails(t *testing.T) {
	if _, err := LoadRules("/nonexistent/rules.json"); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules.BodyRegions) == 0 || len(rules.RedFlags) == 0 {
		t.Error("defaults not populated")
	}
}
