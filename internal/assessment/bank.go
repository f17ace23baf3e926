package assessment

// Bank holds the phase-partitioned interview question set. It is immutable
// after construction and therefore safe for concurrent readers.
type Bank struct {
	byPhase map[Phase][]Question
	byID    map[string]Question
	total   int
}

// NewBank builds the default PainAR injury interview bank.
func NewBank() *Bank {
	return newBank(defaultQuestions())
}

func newBank(questions []Question) *Bank {
	b := &Bank{
		byPhase: make(map[Phase][]Question),
		byID:    make(map[string]Question),
	}
	for _, q := range questions {
		b.byPhase[q.Phase] = append(b.byPhase[q.Phase], q)
		b.byID[q.ID] = q
		b.total++
	}
	return b
}

// QuestionsForPhase returns the questions of a phase in declaration order.
func (b *Bank) QuestionsForPhase(phase Phase) []Question {
	return b.byPhase[phase]
}

// QuestionByID looks a question up by id. The second return value is false
// when no such question exists.
func (b *Bank) QuestionByID(id string) (Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// QuestionsWithPriority returns every question of the given priority level
// across all phases, in phase walk order.
func (b *Bank) QuestionsWithPriority(priority int) []Question {
	var out []Question
	for _, phase := range phaseOrder {
		for _, q := range b.byPhase[phase] {
			if q.Priority == priority {
				out = append(out, q)
			}
		}
	}
	return out
}

// Total returns the number of questions across all phases.
func (b *Bank) Total() int {
	return b.total
}

func defaultQuestions() []Question {
	return []Question{
		// Initial screening
		{
			ID:    "pain_chief_complaint",
			Phase: PhaseInitialScreening,
			Text:  "Can you tell me about your main concern today? What's bothering you the most?",
			FollowUps: []string{
				"When did this problem first start?",
				"Has it been getting better, worse, or staying the same?",
				"What do you think might have caused this?",
			},
			DataPoints: []string{"chief_complaint", "onset_timeline", "progression", "suspected_cause"},
			Priority:   1,
		},
		{
			ID:    "pain_location",
			Phase: PhaseInitialScreening,
			Text:  "Can you show me or describe exactly where you're experiencing pain or discomfort?",
			FollowUps: []string{
				"Does the pain stay in one place or does it move around?",
				"Does it spread to any other areas of your body?",
				"Is it deeper inside or more on the surface?",
			},
			DataPoints: []string{"primary_location", "radiation_pattern", "pain_depth", "affected_areas"},
			Priority:   1,
		},
		{
			ID:    "pain_severity",
			Phase: PhaseInitialScreening,
			Text:  "On a scale of 0 to 10, where 0 is no pain and 10 is the worst pain imaginable, how would you rate your pain right now?",
			FollowUps: []string{
				"What's the worst it's been in the past week?",
				"What's the best it's been?",
				"How would you rate your average pain level?",
			},
			DataPoints: []string{"current_pain_level", "worst_pain_level", "best_pain_level", "average_pain_level"},
			Priority:   1,
		},

		// Pain characteristics
		{
			ID:    "pain_quality",
			Phase: PhasePainCharacteristics,
			Text:  "How would you describe the pain? For example: sharp, dull, burning, aching, throbbing, stabbing, cramping, or something else?",
			FollowUps: []string{
				"Does the type of pain change throughout the day?",
				"Are there different types of pain in different areas?",
				"Does it feel like any pain you've had before?",
			},
			DataPoints: []string{"pain_descriptors", "pain_variability", "pain_patterns", "pain_familiarity"},
			Priority:   2,
		},
		{
			ID:    "pain_timing",
			Phase: PhasePainCharacteristics,
			Text:  "When do you notice the pain most? Is it constant or does it come and go?",
			FollowUps: []string{
				"What time of day is it typically worst?",
				"How long do pain episodes last?",
				"Do you wake up with pain or does it develop during the day?",
			},
			DataPoints: []string{"pain_frequency", "circadian_pattern", "episode_duration", "onset_timing"},
			Priority:   2,
		},
		{
			ID:    "triggers_relievers",
			Phase: PhasePainCharacteristics,
			Text:  "What makes your pain better? What makes it worse?",
			FollowUps: []string{
				"Does movement help or hurt?",
				"How about rest, heat, cold, or specific positions?",
				"Have you tried any medications or treatments?",
			},
			DataPoints: []string{"aggravating_factors", "relieving_factors", "positional_effects", "treatment_responses"},
			Priority:   2,
		},

		// Functional impact
		{
			ID:    "daily_activities",
			Phase: PhaseFunctionalImpact,
			Text:  "How is this pain affecting your daily activities? What can't you do now that you could do before?",
			FollowUps: []string{
				"How about work or school activities?",
				"What about household tasks?",
				"Any changes in your sleep?",
			},
			DataPoints: []string{"functional_limitations", "work_impact", "home_activities", "sleep_disturbance"},
			Priority:   2,
		},
		{
			ID:    "mobility_assessment",
			Phase: PhaseFunctionalImpact,
			Text:  "Tell me about your mobility. Any difficulty walking, climbing stairs, or moving around?",
			FollowUps: []string{
				"Do you use any assistive devices?",
				"How far can you walk comfortably?",
				"Any balance or coordination issues?",
			},
			DataPoints: []string{"mobility_status", "walking_tolerance", "assistive_devices", "balance_issues"},
			Priority:   2,
		},
		{
			ID:    "psychological_impact",
			Phase: PhaseFunctionalImpact,
			Text:  "How is this condition affecting you emotionally? Are you feeling frustrated, worried, or down about it?",
			FollowUps: []string{
				"Has it changed your mood or energy levels?",
				"Are you worried about the future?",
				"How is it affecting your relationships?",
			},
			DataPoints: []string{"emotional_impact", "mood_changes", "anxiety_levels", "social_impact"},
			Priority:   3,
		},

		// Medical history
		{
			ID:    "injury_mechanism",
			Phase: PhaseMedicalHistory,
			Text:  "Can you walk me through exactly how this injury happened? What were you doing when it started?",
			FollowUps: []string{
				"Was there a specific moment when you felt something wrong?",
				"Did you hear or feel anything unusual (like a pop, crack, or tear)?",
				"Were you able to continue what you were doing?",
			},
			DataPoints: []string{"mechanism_of_injury", "immediate_symptoms", "audible_signs", "immediate_function"},
			Priority:   1,
		},
		{
			ID:    "previous_injuries",
			Phase: PhaseMedicalHistory,
			Text:  "Have you had any previous injuries to this area or similar problems anywhere else?",
			FollowUps: []string{
				"How were previous injuries treated?",
				"Did they heal completely?",
				"Any ongoing issues from past injuries?",
			},
			DataPoints: []string{"injury_history", "previous_treatments", "residual_effects", "recurrence_pattern"},
			Priority:   3,
		},
		{
			ID:    "medical_conditions",
			Phase: PhaseMedicalHistory,
			Text:  "Do you have any medical conditions or take any medications I should know about?",
			FollowUps: []string{
				"Any conditions affecting bones, joints, or muscles?",
				"Any medications for pain or inflammation?",
				"Any allergies to medications?",
			},
			DataPoints: []string{"medical_conditions", "current_medications", "allergies", "relevant_conditions"},
			Priority:   3,
		},

		// Lifestyle factors
		{
			ID:    "activity_level",
			Phase: PhaseLifestyleFactors,
			Text:  "Tell me about your typical activity level. Do you exercise regularly, play sports, or have a physically demanding job?",
			FollowUps: []string{
				"What types of activities do you enjoy?",
				"How has your activity level changed since this started?",
				"What are your fitness goals?",
			},
			DataPoints: []string{"baseline_activity", "exercise_habits", "sports_participation", "fitness_goals"},
			Priority:   4,
		},
		{
			ID:    "ergonomics_lifestyle",
			Phase: PhaseLifestyleFactors,
			Text:  "Tell me about your work setup and daily postures. Do you sit at a desk, do physical labor, or something else?",
			FollowUps: []string{
				"How many hours do you spend in the same position?",
				"What's your typical sleep position and mattress like?",
				"Any repetitive motions in your daily routine?",
			},
			DataPoints: []string{"work_ergonomics", "postural_habits", "sleep_setup", "repetitive_activities"},
			Priority:   4,
		},
		{
			ID:    "stress_factors",
			Phase: PhaseLifestyleFactors,
			Text:  "Are there any stressors in your life that might be affecting your healing or pain levels?",
			FollowUps: []string{
				"How do you typically handle stress?",
				"Have you noticed stress affecting your pain?",
				"What support systems do you have?",
			},
			DataPoints: []string{"stress_levels", "coping_mechanisms", "stress_pain_relationship", "support_systems"},
			Priority:   4,
		},

		// Follow-up
		{
			ID:    "treatment_goals",
			Phase: PhaseFollowUp,
			Text:  "What are your main goals for treatment? What would you most like to be able to do again?",
			FollowUps: []string{
				"What's most important to you in your recovery?",
				"Are there specific activities you're hoping to return to?",
				"What would successful treatment look like to you?",
			},
			DataPoints: []string{"treatment_goals", "functional_priorities", "recovery_expectations", "success_criteria"},
			Priority:   2,
		},
		{
			ID:    "red_flag_screening",
			Phase: PhaseFollowUp,
			Text:  "Have you experienced any numbness, tingling, weakness, or loss of function? Any fever, nausea, or other symptoms?",
			FollowUps: []string{
				"Any changes in bowel or bladder function?",
				"Any severe headaches or dizziness?",
				"Any symptoms that seem unrelated but started around the same time?",
			},
			DataPoints: []string{"neurological_symptoms", "systemic_symptoms", "red_flag_indicators", "associated_symptoms"},
			Priority:   1,
		},
		{
			ID:    "additional_concerns",
			Phase: PhaseFollowUp,
			Text:  "Is there anything else about your condition that you think I should know? Any concerns or questions you have?",
			FollowUps: []string{
				"What worries you most about this condition?",
				"Is there anything that doesn't seem to fit the pattern?",
				"What questions do you have about your condition?",
			},
			DataPoints: []string{"additional_symptoms", "patient_concerns", "unusual_features", "questions"},
			Priority:   3,
		},
	}
}
