package openai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Connector wraps the OpenAI API for chat completions and embeddings.
// Embeddings are cached by content hash since knowledge chunks and
// repeated queries embed the same text often.
type Connector struct {
	config         config.OpenAIConfig
	client         *openai.Client
	embeddingCache *cache.Cache
	logger         *zap.Logger
}

func NewConnector(
	cfg config.OpenAIConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		config:         cfg,
		client:         openai.NewClient(cfg.APIKey),
		embeddingCache: cache.New(cfg.EmbeddingCacheTTL, 2*cfg.EmbeddingCacheTTL),
		logger:         logger,
	}
}

// ChatCompletion runs a non-streaming chat completion and returns the
// assistant reply.
func (c *Connector) ChatCompletion(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "requesting chat completion",
		zap.String("model", c.config.ChatModel),
		zap.Int("message_count", len(messages)),
	)

	resp, err := retry.DoWithData(func() (openai.ChatCompletionResponse, error) {
		return c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.config.ChatModel,
			Messages:    toOpenAIMessages(messages),
			MaxTokens:   c.config.MaxTokens,
			Temperature: float32(c.config.Temperature),
		})
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	reply := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "chat completion received", zap.Int("reply_length", len(reply)))
	return reply, nil
}

// ChatCompletionStream streams a chat completion, invoking onDelta for
// each content token as it arrives.
func (c *Connector) ChatCompletionStream(ctx context.Context, messages []entity.ChatMessage, onDelta func(delta string) error) error {
	ctxzap.Info(ctx, "requesting streaming chat completion",
		zap.String("model", c.config.ChatModel),
		zap.Int("message_count", len(messages)),
	)

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.config.ChatModel,
		Messages:    toOpenAIMessages(messages),
		MaxTokens:   c.config.MaxTokens,
		Temperature: float32(c.config.Temperature),
		Stream:      true,
	})
	if err != nil {
		return fmt.Errorf("open completion stream: %w", err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := onDelta(delta); err != nil {
			return fmt.Errorf("deliver stream chunk: %w", err)
		}
	}
}

// Embed returns the embedding vector for a single text.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	key := embeddingCacheKey(text)
	if cached, ok := c.embeddingCache.Get(key); ok {
		return cached.([]float32), nil
	}

	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one API call. Results are cached
// individually.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts to embed", entity.ErrInvalidParameter)
	}

	ctxzap.Info(ctx, "requesting embeddings",
		zap.String("model", c.config.EmbeddingModel),
		zap.Int("text_count", len(texts)),
	)

	resp, err := retry.DoWithData(func() (openai.EmbeddingResponse, error) {
		return c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(c.config.EmbeddingModel),
			Input: texts,
		})
	}, append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for i, item := range resp.Data {
		if len(item.Embedding) != c.config.VectorDim {
			return nil, fmt.Errorf("embedding dimension mismatch: want %d, got %d", c.config.VectorDim, len(item.Embedding))
		}
		vectors[i] = item.Embedding
		c.embeddingCache.Set(embeddingCacheKey(texts[i]), item.Embedding, cache.DefaultExpiration)
	}
	return vectors, nil
}

func toOpenAIMessages(messages []entity.ChatMessage) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		converted = append(converted, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return converted
}

func embeddingCacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}
