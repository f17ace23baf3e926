package assessment

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestManager() *Manager {
	return NewManager(NewBank(), DefaultRules(), zap.NewNop())
}

func TestStartRejectsDuplicateSession(t *testing.T) {
	m := newTestManager()

	if _, err := m.Start("user-1", "sess-1", "my knee hurts"); err != nil {
		t.Fatalf("first start failed: %v", err)
	}

	_, err := m.Start("user-1", "sess-1", "again")
	if !errors.Is(err, ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}
}

func TestStartRecordsInitialComplaint(t *testing.T) {
	m := newTestManager()

	snap, err := m.Start("user-1", "sess-1", "twisted my ankle")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if snap.ExtractedData["initial_complaint"] != "twisted my ankle" {
		t.Errorf("initial complaint not recorded: %v", snap.ExtractedData)
	}
	if snap.CurrentPhase != PhaseInitialScreening {
		t.Errorf("expected phase %s, got %s", PhaseInitialScreening, snap.CurrentPhase)
	}
}

func TestUnknownSessionErrors(t *testing.T) {
	m := newTestManager()

	if _, err := m.NextQuestion("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("NextQuestion: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := m.ProcessResponse("missing", "pain_severity", "7"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("ProcessResponse: expected ErrSessionNotFound, got %v", err)
	}
	if _, err := m.Summary("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Summary: expected ErrSessionNotFound, got %v", err)
	}
}

func TestNextQuestionStartsWithChiefComplaint(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	q, err := m.NextQuestion("sess-1")
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}
	if q.ID != "pain_chief_complaint" {
		t.Errorf("expected pain_chief_complaint first, got %s", q.ID)
	}
}

func TestProcessResponseConsumesPendingQuestion(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	q, err := m.NextQuestion("sess-1")
	if err != nil {
		t.Fatalf("next question failed: %v", err)
	}

	// Empty question id applies the answer to the pending question.
	result, err := m.ProcessResponse("sess-1", "", "I have severe lower back pain that started yesterday")
	if err != nil {
		t.Fatalf("process response failed: %v", err)
	}

	if result.PriorityScore != highUrgencyIncrement+recentOnsetIncrement {
		t.Errorf("expected priority %d, got %d", highUrgencyIncrement+recentOnsetIncrement, result.PriorityScore)
	}

	snap, _ := m.Snapshot("sess-1")
	if len(snap.Responses) != 1 || snap.Responses[0].QuestionID != q.ID {
		t.Errorf("response not recorded against pending question %s: %+v", q.ID, snap.Responses)
	}
}

func TestProcessResponseUnknownQuestion(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	if _, err := m.ProcessResponse("sess-1", "not_a_question", "hello there friend"); err == nil {
		t.Error("expected error for unknown question id")
	}
}

func TestFullInterviewReachesCompletion(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "hurt my shoulder")

	var lastCompletion float64
	var lastPriority int
	seen := make(map[string]bool)

	for i := 0; i < 50; i++ {
		q, err := m.NextQuestion("sess-1")
		if err != nil {
			t.Fatalf("next question failed: %v", err)
		}
		if q == nil {
			break
		}
		if seen[q.ID] {
			t.Fatalf("question %s asked twice", q.ID)
		}
		seen[q.ID] = true

		result, err := m.ProcessResponse("sess-1", q.ID, "it has been quite painful and difficult lately")
		if err != nil {
			t.Fatalf("process response for %s failed: %v", q.ID, err)
		}
		if result.Completion < lastCompletion {
			t.Errorf("completion decreased: %f -> %f", lastCompletion, result.Completion)
		}
		if result.PriorityScore < lastPriority {
			t.Errorf("priority decreased: %d -> %d", lastPriority, result.PriorityScore)
		}
		lastCompletion = result.Completion
		lastPriority = result.PriorityScore
	}

	if len(seen) != m.Bank().Total() {
		t.Errorf("expected %d questions asked, got %d", m.Bank().Total(), len(seen))
	}
	if lastCompletion != 100 {
		t.Errorf("expected 100%% completion, got %f", lastCompletion)
	}

	q, err := m.NextQuestion("sess-1")
	if err != nil {
		t.Fatalf("next question after completion failed: %v", err)
	}
	if q != nil {
		t.Errorf("expected nil question after completion, got %s", q.ID)
	}
}

func TestSummarySevereFindings(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	if _, err := m.ProcessResponse("sess-1", "pain_severity", "it is an 8 out of 10"); err != nil {
		t.Fatalf("process response failed: %v", err)
	}

	report, err := m.Summary("sess-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	foundSevere := false
	for _, finding := range report.KeyFindings {
		if strings.Contains(finding, "Severe pain reported (level 8/10)") {
			foundSevere = true
		}
	}
	if !foundSevere {
		t.Errorf("expected severe pain finding, got %v", report.KeyFindings)
	}

	if report.ClinicalData.PainAssessment.Severity == nil || *report.ClinicalData.PainAssessment.Severity != 8 {
		t.Error("severity not carried into clinical data")
	}
}

func TestSummaryRedFlags(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	if _, err := m.ProcessResponse("sess-1", "red_flag_screening", "I have numbness and weakness in my left leg"); err != nil {
		t.Fatalf("process response failed: %v", err)
	}

	report, err := m.Summary("sess-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if len(report.RedFlags) == 0 {
		t.Fatal("expected red flag in report")
	}
	if !strings.Contains(report.RedFlags[0], "numbness") {
		t.Errorf("red flag missing excerpt: %q", report.RedFlags[0])
	}
}

func TestSummaryRecommendationsByPriority(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "")

	// Three high-urgency answers push the score past the urgent threshold.
	m.ProcessResponse("sess-1", "pain_chief_complaint", "severe unbearable pain everywhere")
	m.ProcessResponse("sess-1", "pain_severity", "definitely a 10 the worst")
	m.ProcessResponse("sess-1", "red_flag_screening", "numbness and weakness too")

	report, err := m.Summary("sess-1")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if report.SessionInfo.PriorityScore <= 20 {
		t.Fatalf("expected priority above 20, got %d", report.SessionInfo.PriorityScore)
	}

	foundUrgent := false
	for _, rec := range report.Recommendations {
		if strings.Contains(rec, "urgent medical evaluation") {
			foundUrgent = true
		}
	}
	if !foundUrgent {
		t.Errorf("expected urgent recommendation, got %v", report.Recommendations)
	}
}

func TestSnapshotRestoreRoundtrip(t *testing.T) {
	m := newTestManager()
	m.Start("user-1", "sess-1", "wrist pain")
	m.ProcessResponse("sess-1", "pain_severity", "around a 6 most days")

	snap, err := m.Snapshot("sess-1")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	data, err := snap.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	fresh := newTestManager()
	if err := fresh.Restore(decoded); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored, err := fresh.Snapshot("sess-1")
	if err != nil {
		t.Fatalf("snapshot after restore failed: %v", err)
	}
	if restored.PriorityScore != snap.PriorityScore {
		t.Errorf("priority lost in roundtrip: %d vs %d", restored.PriorityScore, snap.PriorityScore)
	}
	if len(restored.Responses) != len(snap.Responses) {
		t.Errorf("responses lost in roundtrip: %d vs %d", len(restored.Responses), len(snap.Responses))
	}

	// The restored session keeps progressing from where it left off.
	q, err := fresh.NextQuestion("sess-1")
	if err != nil {
		t.Fatalf("next question after restore failed: %v", err)
	}
	if q == nil || q.ID == "pain_severity" {
		t.Error("restored session should not revisit answered questions")
	}
}

func TestDecodeSnapshotRejectsUnknownVersion(t *testing.T) {
	if _, err := DecodeSnapshot([]byte(`{"schema_version":99,"session_id":"x"}`)); err == nil {
		t.Error("expected error for unknown schema version")
	}
}

func TestActive(t *testing.T) {
	m := newTestManager()
	if m.Active("sess-1") {
		t.Error("session should not be active before start")
	}
	m.Start("user-1", "sess-1", "")
	if !m.Active("sess-1") {
		t.Error("session should be active after start")
	}
}
