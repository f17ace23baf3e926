package chat

import (
	"context"

	"github.com/achitaan/AR-diagass/internal/entity"
)

type ChatUsecase interface {
	Chat(ctx context.Context, req *entity.SimpleChatRequest) (*entity.SimpleChatResponse, error)
	StreamChat(ctx context.Context, req *entity.ChatRequest, onDelta func(delta string) error) (string, error)
	TranscribeAudio(ctx context.Context, audioData []byte, filename string) (string, error)
	GetThreadMessages(ctx context.Context, threadID string) ([]entity.Message, error)
	Sync(ctx context.Context, req *entity.SyncRequest) (*entity.SyncResponse, error)
}
