package assessment

import (
	"context"
	"fmt"

	core "github.com/achitaan/AR-diagass/internal/assessment"
	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/formatter"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AssessmentUsecase exposes the injury interview engine to the API layer
// and renders exportable reports.
type AssessmentUsecase struct {
	manager   *core.Manager
	formatter *formatter.Factory
	validator *validator.Validator
	logger    *zap.Logger
}

// NewUsecase creates a new assessment use case
func NewUsecase(
	manager *core.Manager,
	formatter *formatter.Factory,
	validator *validator.Validator,
	logger *zap.Logger,
) *AssessmentUsecase {
	return &AssessmentUsecase{
		manager:   manager,
		formatter: formatter,
		validator: validator,
		logger:    logger,
	}
}

// Start begins a structured injury interview for the session.
func (uc *AssessmentUsecase) Start(ctx context.Context, req *entity.StartAssessmentRequest) (*core.Snapshot, error) {
	if err := uc.validator.ValidateStartAssessment(req); err != nil {
		return nil, err
	}

	snap, err := uc.manager.Start(req.UserID, req.SessionID, req.InitialComplaint)
	if err != nil {
		return nil, fmt.Errorf("start assessment: %w", err)
	}

	ctxzap.Info(ctx, "assessment session started",
		zap.String("session_id", req.SessionID),
		zap.String("user_id", req.UserID),
	)
	return snap, nil
}

// NextQuestion returns the next interview question, or completion when
// the question bank is exhausted.
func (uc *AssessmentUsecase) NextQuestion(ctx context.Context, sessionID string) (*entity.NextQuestionResponse, error) {
	q, err := uc.manager.NextQuestion(sessionID)
	if err != nil {
		return nil, fmt.Errorf("next question: %w", err)
	}
	if q == nil {
		return &entity.NextQuestionResponse{Complete: true}, nil
	}
	return &entity.NextQuestionResponse{Question: toQuestionDTO(q)}, nil
}

// SubmitResponse records an interview answer and returns the extraction,
// follow-up and progress outcome.
func (uc *AssessmentUsecase) SubmitResponse(ctx context.Context, sessionID string, req *entity.SubmitResponseRequest) (*entity.ProcessResponseResult, error) {
	if err := uc.validator.ValidateSubmitResponse(req); err != nil {
		return nil, err
	}

	result, err := uc.manager.ProcessResponse(sessionID, req.QuestionID, req.Response)
	if err != nil {
		return nil, fmt.Errorf("process response: %w", err)
	}

	ctxzap.Info(ctx, "assessment response processed",
		zap.String("session_id", sessionID),
		zap.Float64("completion", result.Completion),
		zap.Int("priority_score", result.PriorityScore),
	)

	return &entity.ProcessResponseResult{
		ExtractedData: result.Extracted,
		FollowUp:      result.FollowUp,
		Completion:    result.Completion,
		PriorityScore: result.PriorityScore,
		NextQuestion:  toQuestionDTO(result.NextQuestion),
	}, nil
}

// Summary builds the structured assessment report.
func (uc *AssessmentUsecase) Summary(ctx context.Context, sessionID string) (*core.Report, error) {
	report, err := uc.manager.Summary(sessionID)
	if err != nil {
		return nil, fmt.Errorf("build summary: %w", err)
	}
	return report, nil
}

// Snapshot returns the serializable session state.
func (uc *AssessmentUsecase) Snapshot(ctx context.Context, sessionID string) (*core.Snapshot, error) {
	snap, err := uc.manager.Snapshot(sessionID)
	if err != nil {
		return nil, fmt.Errorf("snapshot session: %w", err)
	}
	return snap, nil
}

// Restore re-registers a session from a previously exported snapshot.
func (uc *AssessmentUsecase) Restore(ctx context.Context, data []byte) (*core.Snapshot, error) {
	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		return nil, err
	}
	if err := uc.manager.Restore(snap); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	ctxzap.Info(ctx, "assessment session restored", zap.String("session_id", snap.SessionID))
	return snap, nil
}

// Export renders the assessment report in the requested format and
// returns the bytes with their content type and file extension.
func (uc *AssessmentUsecase) Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, string, string, error) {
	report, err := uc.manager.Summary(sessionID)
	if err != nil {
		return nil, "", "", fmt.Errorf("build summary: %w", err)
	}

	f, err := uc.formatter.Create(format)
	if err != nil {
		return nil, "", "", err
	}

	rendered, err := f.Format(renderReport(report))
	if err != nil {
		return nil, "", "", fmt.Errorf("render report: %w", err)
	}

	ctxzap.Info(ctx, "assessment report exported",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.Int("size", len(rendered)),
	)
	return rendered, f.ContentType(), f.FileExtension(), nil
}

func toQuestionDTO(q *core.Question) *entity.QuestionDTO {
	if q == nil {
		return nil
	}
	return &entity.QuestionDTO{
		ID:       q.ID,
		Phase:    string(q.Phase),
		Question: q.Text,
		Priority: q.Priority,
	}
}
