package assessment

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrSessionNotFound is returned when no assessment exists for an id.
	ErrSessionNotFound = errors.New("assessment session not found")
	// ErrSessionActive is returned by Start when the session id is already
	// tracked. The caller decides whether that is a conflict or a retry.
	ErrSessionActive = errors.New("assessment session already active")
)

// Response records a single answer given during the interview. Responses
// are append-only.
type Response struct {
	QuestionID       string    `json:"question_id"`
	Response         string    `json:"response"`
	Timestamp        time.Time `json:"timestamp"`
	FollowUpAsked    string    `json:"follow_up_asked,omitempty"`
	FollowUpResponse string    `json:"follow_up_response,omitempty"`
}

// session is the mutable per-interview state. All access goes through the
// manager, which serializes it under the session's own lock.
type session struct {
	mu sync.Mutex

	userID    string
	sessionID string
	startTime time.Time

	currentPhase Phase
	responses    []Response
	extracted    map[string]any
	completion   float64
	priority     int

	// pendingQuestionID is the id handed out by NextQuestion and not yet
	// answered. It replaces the "guess which question was just answered"
	// heuristic the conversation layer would otherwise need.
	pendingQuestionID string
}

// ProcessResult bundles everything a caller needs after a response is
// processed.
type ProcessResult struct {
	Extracted     map[string]any `json:"extracted_data"`
	FollowUp      string         `json:"follow_up,omitempty"`
	Completion    float64        `json:"completion_percentage"`
	PriorityScore int            `json:"priority_score"`
	// NextQuestion is only populated when no follow-up is pending.
	NextQuestion *Question `json:"next_question,omitempty"`
}

// Manager tracks active injury assessments. It owns the session registry
// explicitly rather than through package state, and guards it with locks so
// concurrent requests for the same session cannot race.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	bank   *Bank
	rules  *RuleSet
	logger *zap.Logger
}

// NewManager creates a manager over the given question bank and rule tables.
func NewManager(bank *Bank, rules *RuleSet, logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*session),
		bank:     bank,
		rules:    rules,
		logger:   logger,
	}
}

// Bank exposes the manager's question bank for read-only use.
func (m *Manager) Bank() *Bank {
	return m.bank
}

// Start begins a new assessment at the first interview phase. It fails with
// ErrSessionActive when the session id is already tracked; overwriting
// silently would discard recorded answers.
func (m *Manager) Start(userID, sessionID, initialComplaint string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sessionID]; exists {
		return nil, fmt.Errorf("start assessment %s: %w", sessionID, ErrSessionActive)
	}

	s := &session{
		userID:       userID,
		sessionID:    sessionID,
		startTime:    time.Now(),
		currentPhase: phaseOrder[0],
		extracted:    make(map[string]any),
	}
	if initialComplaint != "" {
		s.extracted["initial_complaint"] = initialComplaint
	}
	m.sessions[sessionID] = s

	m.logger.Info("assessment started",
		zap.String("session_id", sessionID),
		zap.String("user_id", userID),
	)

	return snapshotLocked(s), nil
}

// NextQuestion returns the highest-priority unanswered question of the
// session's current phase, advancing through phases as they are exhausted.
// A nil question with a nil error means the assessment is complete.
func (m *Manager) NextQuestion(sessionID string) (*Question, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := m.nextQuestionLocked(s)
	if q == nil {
		s.pendingQuestionID = ""
		return nil, nil
	}

	s.pendingQuestionID = q.ID
	return q, nil
}

// nextQuestionLocked walks the phase order from the session's current phase
// until it finds an unanswered question. Ties on priority resolve to bank
// declaration order.
func (m *Manager) nextQuestionLocked(s *session) *Question {
	answered := make(map[string]bool, len(s.responses))
	for _, r := range s.responses {
		answered[r.QuestionID] = true
	}

	for {
		var best *Question
		for _, q := range m.bank.QuestionsForPhase(s.currentPhase) {
			if answered[q.ID] {
				continue
			}
			if best == nil || q.Priority < best.Priority {
				q := q
				best = &q
			}
		}
		if best != nil {
			return best
		}

		next, ok := NextPhase(s.currentPhase)
		if !ok {
			s.currentPhase = PhaseComplete
			return nil
		}
		s.currentPhase = next
	}
}

// ProcessResponse records an answer, extracts structured data, updates the
// priority score and completion percentage, and decides whether a follow-up
// should be asked. An empty questionID consumes the pending question set by
// NextQuestion.
func (m *Manager) ProcessResponse(sessionID, questionID, text string) (*ProcessResult, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if questionID == "" {
		questionID = s.pendingQuestionID
	}

	question, ok := m.bank.QuestionByID(questionID)
	if !ok {
		return nil, fmt.Errorf("process response: unknown question %q", questionID)
	}

	response := Response{
		QuestionID: questionID,
		Response:   text,
		Timestamp:  time.Now(),
	}

	extracted := extractDataPoints(m.rules, question, text)
	for k, v := range extracted {
		s.extracted[k] = v
	}

	s.priority += scoreResponse(m.rules, questionID, text)
	followUp := followUpFor(m.rules, question, text)
	if followUp != "" {
		response.FollowUpAsked = followUp
	}

	s.responses = append(s.responses, response)
	s.completion = completionPercentage(len(s.responses), m.bank.Total())
	s.pendingQuestionID = ""

	result := &ProcessResult{
		Extracted:     extracted,
		FollowUp:      followUp,
		Completion:    s.completion,
		PriorityScore: s.priority,
	}

	// Only surface the next main question when no follow-up is pending,
	// mirroring how the conversation layer alternates prompts.
	if followUp == "" {
		if next := m.nextQuestionLocked(s); next != nil {
			s.pendingQuestionID = next.ID
			result.NextQuestion = next
		}
	}

	m.logger.Debug("assessment response processed",
		zap.String("session_id", sessionID),
		zap.String("question_id", questionID),
		zap.Float64("completion", s.completion),
		zap.Int("priority_score", s.priority),
	)

	return result, nil
}

// Summary builds the clinical-style report for a session.
func (m *Manager) Summary(sessionID string) (*Report, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return buildReport(m.bank, m.rules, s), nil
}

// Snapshot returns a copy of the session state for serialization.
func (m *Manager) Snapshot(sessionID string) (*Snapshot, error) {
	s, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshotLocked(s), nil
}

// Active reports whether a session id is currently tracked.
func (m *Manager) Active(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok
}

func (m *Manager) lookup(sessionID string) (*session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("assessment %s: %w", sessionID, ErrSessionNotFound)
	}
	return s, nil
}

func completionPercentage(answered, total int) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(answered) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
