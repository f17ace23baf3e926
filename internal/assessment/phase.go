package assessment

// Phase identifies a stage of the structured injury interview.
type Phase string

const (
	PhaseInitialScreening    Phase = "initial_screening"
	PhasePainCharacteristics Phase = "pain_characteristics"
	PhaseFunctionalImpact    Phase = "functional_impact"
	PhaseMedicalHistory      Phase = "medical_history"
	PhaseLifestyleFactors    Phase = "lifestyle_factors"
	PhaseFollowUp            Phase = "follow_up"

	// PhaseComplete is the terminal state reached once every phase's
	// questions have been exhausted.
	PhaseComplete Phase = "complete"
)

// phaseOrder lists interview phases in the order they are walked.
// The order is fixed: phases only ever advance forward.
var phaseOrder = []Phase{
	PhaseInitialScreening,
	PhasePainCharacteristics,
	PhaseFunctionalImpact,
	PhaseMedicalHistory,
	PhaseLifestyleFactors,
	PhaseFollowUp,
}

// phaseTransitions maps each phase to its successor. Kept as an explicit
// table so the terminal state is spelled out rather than implied by a
// slice index running off the end.
var phaseTransitions = map[Phase]Phase{
	PhaseInitialScreening:    PhasePainCharacteristics,
	PhasePainCharacteristics: PhaseFunctionalImpact,
	PhaseFunctionalImpact:    PhaseMedicalHistory,
	PhaseMedicalHistory:      PhaseLifestyleFactors,
	PhaseLifestyleFactors:    PhaseFollowUp,
	PhaseFollowUp:            PhaseComplete,
}

// NextPhase returns the phase that follows p. The second return value is
// false when p is terminal or unknown.
func NextPhase(p Phase) (Phase, bool) {
	next, ok := phaseTransitions[p]
	if !ok || next == PhaseComplete {
		return PhaseComplete, false
	}
	return next, true
}

// Phases returns the interview phases in walk order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}
