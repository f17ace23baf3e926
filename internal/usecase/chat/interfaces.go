package chat

import (
	"context"

	"github.com/achitaan/AR-diagass/internal/entity"
)

type LLMConnector interface {
	ChatCompletion(ctx context.Context, messages []entity.ChatMessage) (string, error)
	ChatCompletionStream(ctx context.Context, messages []entity.ChatMessage, onDelta func(delta string) error) error
	Embed(ctx context.Context, text string) ([]float32, error)
}

type ASRConnector interface {
	TranscribeBytes(ctx context.Context, audioData []byte, filename string) (string, error)
}
