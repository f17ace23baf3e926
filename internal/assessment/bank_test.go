package assessment

import "testing"

func TestBankCoversEveryPhase(t *testing.T) {
	bank := NewBank()

	if bank.Total() != 18 {
		t.Fatalf("expected 18 questions, got %d", bank.Total())
	}

	for _, phase := range Phases() {
		questions := bank.QuestionsForPhase(phase)
		if len(questions) != 3 {
			t.Errorf("phase %s: expected 3 questions, got %d", phase, len(questions))
		}
		for _, q := range questions {
			if q.Phase != phase {
				t.Errorf("question %s filed under phase %s but declares %s", q.ID, phase, q.Phase)
			}
			if q.Text == "" {
				t.Errorf("question %s has no text", q.ID)
			}
			if len(q.DataPoints) == 0 {
				t.Errorf("question %s declares no data points", q.ID)
			}
		}
	}
}

func TestBankUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, q := range defaultQuestions() {
		if seen[q.ID] {
			t.Errorf("duplicate question id %s", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestQuestionByID(t *testing.T) {
	bank := NewBank()

	q, ok := bank.QuestionByID("pain_severity")
	if !ok {
		t.Fatal("pain_severity not found")
	}
	if q.Phase != PhaseInitialScreening {
		t.Errorf("expected phase %s, got %s", PhaseInitialScreening, q.Phase)
	}

	if _, ok := bank.QuestionByID("does_not_exist"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestQuestionsWithPriority(t *testing.T) {
	bank := NewBank()

	critical := bank.QuestionsWithPriority(1)
	want := []string{"pain_chief_complaint", "pain_location", "pain_severity", "injury_mechanism", "red_flag_screening"}
	if len(critical) != len(want) {
		t.Fatalf("expected %d priority-1 questions, got %d", len(want), len(critical))
	}
	for i, q := range critical {
		if q.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], q.ID)
		}
	}
}

func TestPhaseOrder(t *testing.T) {
	phases := Phases()
	if phases[0] != PhaseInitialScreening {
		t.Errorf("interview must begin at %s, got %s", PhaseInitialScreening, phases[0])
	}

	current := phases[0]
	for i := 1; i < len(phases); i++ {
		next, ok := NextPhase(current)
		if !ok {
			t.Fatalf("phase %s has no successor but %s expected", current, phases[i])
		}
		if next != phases[i] {
			t.Errorf("after %s expected %s, got %s", current, phases[i], next)
		}
		current = next
	}

	if next, ok := NextPhase(current); ok {
		t.Errorf("final phase %s must be terminal, got successor %s", current, next)
	}
	if next, _ := NextPhase(PhaseComplete); next != PhaseComplete {
		t.Errorf("complete phase must stay terminal, got %s", next)
	}
}
