package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Sync applies thread and message deltas uploaded by the mobile client.
// Each delta is applied independently; failures are collected per item
// so one bad record does not abort the batch.
func (uc *ChatUsecase) Sync(ctx context.Context, req *entity.SyncRequest) (*entity.SyncResponse, error) {
	if err := uc.validator.ValidateSync(req); err != nil {
		return nil, err
	}

	resp := &entity.SyncResponse{Errors: []string{}}

	for _, delta := range req.Threads {
		if err := uc.applyThreadDelta(ctx, delta); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("thread %s: %v", delta.ID, err))
			continue
		}
		resp.SyncedThreads++
	}

	for _, delta := range req.Messages {
		if err := uc.applyMessageDelta(ctx, delta); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("message %s: %v", delta.ID, err))
			continue
		}
		resp.SyncedMessages++
	}

	resp.Success = len(resp.Errors) == 0

	ctxzap.Info(ctx, "sync applied",
		zap.String("client_id", req.ClientID),
		zap.Int("synced_threads", resp.SyncedThreads),
		zap.Int("synced_messages", resp.SyncedMessages),
		zap.Int("errors", len(resp.Errors)),
	)

	return resp, nil
}

func (uc *ChatUsecase) applyThreadDelta(ctx context.Context, delta entity.ThreadDelta) error {
	switch delta.Operation {
	case entity.SyncOpInsert, entity.SyncOpUpdate:
		_, err := uc.threadRepo.GetOrCreateThread(ctx, delta.ID, delta.Title)
		if err != nil {
			return err
		}
		if delta.Operation == entity.SyncOpUpdate {
			_, err = uc.threadRepo.UpdateThreadTitle(ctx, delta.ID, delta.Title)
		}
		return err
	case entity.SyncOpDelete:
		err := uc.threadRepo.DeleteThread(ctx, delta.ID)
		// Deleting an already-deleted record is fine on replay.
		if errors.Is(err, entity.ErrThreadNotFound) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown operation %q", delta.Operation)
	}
}

func (uc *ChatUsecase) applyMessageDelta(ctx context.Context, delta entity.MessageDelta) error {
	switch delta.Operation {
	case entity.SyncOpInsert, entity.SyncOpUpdate:
		if _, err := uc.threadRepo.GetOrCreateThread(ctx, delta.ThreadID, ""); err != nil {
			return err
		}
		_, err := uc.messageRepo.UpsertMessage(ctx, entity.Message{
			ID:       delta.ID,
			ThreadID: delta.ThreadID,
			Role:     entity.MessageRole(delta.Role),
			Content:  delta.Content,
		})
		return err
	case entity.SyncOpDelete:
		err := uc.messageRepo.DeleteMessage(ctx, delta.ID)
		if errors.Is(err, entity.ErrMessageNotFound) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown operation %q", delta.Operation)
	}
}
