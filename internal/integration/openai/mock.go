package openai

import (
	"context"
	"fmt"
	"math"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is the mock LLM implementation used for local development
// without API credentials.
type MockConnector struct {
	vectorDim int
	logger    *zap.Logger
}

func NewMockConnector(vectorDim int, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		vectorDim: vectorDim,
		logger:    logger,
	}
}

func (m *MockConnector) ChatCompletion(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "[MOCK] chat completion", zap.Int("message_count", len(messages)))

	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return fmt.Sprintf("I understand you said: %q. As this is a development environment, "+
		"no clinical guidance is generated. Please describe your symptoms in more detail.", last), nil
}

func (m *MockConnector) ChatCompletionStream(ctx context.Context, messages []entity.ChatMessage, onDelta func(delta string) error) error {
	reply, err := m.ChatCompletion(ctx, messages)
	if err != nil {
		return err
	}
	// Emit in small pieces so SSE consumers see multiple events.
	const chunkSize = 16
	for i := 0; i < len(reply); i += chunkSize {
		end := i + chunkSize
		if end > len(reply) {
			end = len(reply)
		}
		if err := onDelta(reply[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockConnector) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch produces deterministic pseudo-vectors so similarity search
// behaves consistently across runs.
func (m *MockConnector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", entity.ErrInvalidParameter)
	}

	ctxzap.Info(ctx, "[MOCK] embeddings", zap.Int("text_count", len(texts)))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector := make([]float32, m.vectorDim)
		seed := float64(len(text) + 1)
		for j := range vector {
			vector[j] = float32(math.Sin(seed * float64(j+1)))
		}
		vectors[i] = normalize(vector)
	}
	return vectors, nil
}

func normalize(vector []float32) []float32 {
	var norm float64
	for _, v := range vector {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vector
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}
