package entity

// StartAssessmentRequest begins a structured injury interview.
type StartAssessmentRequest struct {
	UserID           string `json:"user_id"`
	SessionID        string `json:"session_id"`
	InitialComplaint string `json:"initial_complaint,omitempty"`
}

// SubmitResponseRequest carries one interview answer. QuestionID may be
// empty, in which case the answer is applied to the pending question.
type SubmitResponseRequest struct {
	QuestionID string `json:"question_id,omitempty"`
	Response   string `json:"response"`
}

// QuestionDTO is the wire form of an interview question.
type QuestionDTO struct {
	ID       string `json:"id"`
	Phase    string `json:"phase"`
	Question string `json:"question"`
	Priority int    `json:"priority"`
}

// NextQuestionResponse is returned by the next-question endpoint. Question
// is nil once the assessment is complete.
type NextQuestionResponse struct {
	Question *QuestionDTO `json:"question,omitempty"`
	Complete bool         `json:"complete"`
}

// ProcessResponseResult is returned after an answer is processed.
type ProcessResponseResult struct {
	ExtractedData map[string]any `json:"extracted_data"`
	FollowUp      string         `json:"follow_up,omitempty"`
	Completion    float64        `json:"completion_percentage"`
	PriorityScore int            `json:"priority_score"`
	NextQuestion  *QuestionDTO   `json:"next_question,omitempty"`
}

// ExportFormat selects the rendering of an assessment report.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)
