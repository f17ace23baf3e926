package assessment

import (
	"context"

	core "github.com/achitaan/AR-diagass/internal/assessment"
	"github.com/achitaan/AR-diagass/internal/entity"
)

type AssessmentUsecase interface {
	Start(ctx context.Context, req *entity.StartAssessmentRequest) (*core.Snapshot, error)
	NextQuestion(ctx context.Context, sessionID string) (*entity.NextQuestionResponse, error)
	SubmitResponse(ctx context.Context, sessionID string, req *entity.SubmitResponseRequest) (*entity.ProcessResponseResult, error)
	Summary(ctx context.Context, sessionID string) (*core.Report, error)
	Snapshot(ctx context.Context, sessionID string) (*core.Snapshot, error)
	Restore(ctx context.Context, data []byte) (*core.Snapshot, error)
	Export(ctx context.Context, sessionID string, format entity.ExportFormat) ([]byte, string, string, error)
}
