package assessment

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotSchemaVersion is bumped whenever the snapshot field set changes.
// Consumers refuse versions they do not understand instead of silently
// drifting between representations.
const SnapshotSchemaVersion = 1

// Snapshot is the explicit serialization contract for assessment state.
type Snapshot struct {
	SchemaVersion int            `json:"schema_version"`
	UserID        string         `json:"user_id"`
	SessionID     string         `json:"session_id"`
	StartTime     time.Time      `json:"start_time"`
	CurrentPhase  Phase          `json:"current_phase"`
	Responses     []Response     `json:"responses"`
	ExtractedData map[string]any `json:"extracted_data"`
	Completion    float64        `json:"completion_percentage"`
	PriorityScore int            `json:"priority_score"`
	PendingID     string         `json:"pending_question_id,omitempty"`
}

// snapshotLocked copies session state. The caller must hold the session
// lock (or, as in Start, the registry write lock before the session is
// published).
func snapshotLocked(s *session) *Snapshot {
	responses := make([]Response, len(s.responses))
	copy(responses, s.responses)

	extracted := make(map[string]any, len(s.extracted))
	for k, v := range s.extracted {
		extracted[k] = v
	}

	return &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		UserID:        s.userID,
		SessionID:     s.sessionID,
		StartTime:     s.startTime,
		CurrentPhase:  s.currentPhase,
		Responses:     responses,
		ExtractedData: extracted,
		Completion:    s.completion,
		PriorityScore: s.priority,
		PendingID:     s.pendingQuestionID,
	}
}

// MarshalBinary encodes the snapshot as JSON.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a snapshot and validates its schema version.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return nil, fmt.Errorf("unsupported snapshot schema version %d", snap.SchemaVersion)
	}
	return &snap, nil
}

// Restore registers a session rebuilt from a snapshot. It fails with
// ErrSessionActive when the id is already tracked.
func (m *Manager) Restore(snap *Snapshot) error {
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snap.SchemaVersion)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[snap.SessionID]; exists {
		return fmt.Errorf("restore assessment %s: %w", snap.SessionID, ErrSessionActive)
	}

	responses := make([]Response, len(snap.Responses))
	copy(responses, snap.Responses)

	extracted := make(map[string]any, len(snap.ExtractedData))
	for k, v := range snap.ExtractedData {
		extracted[k] = v
	}

	m.sessions[snap.SessionID] = &session{
		userID:            snap.UserID,
		sessionID:         snap.SessionID,
		startTime:         snap.StartTime,
		currentPhase:      snap.CurrentPhase,
		responses:         responses,
		extracted:         extracted,
		completion:        snap.Completion,
		priority:          snap.PriorityScore,
		pendingQuestionID: snap.PendingID,
	}

	return nil
}
