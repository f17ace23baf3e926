package chat

import (
	"context"
	"fmt"

	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/achitaan/AR-diagass/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	// retrievalTopK is how many knowledge chunks are injected into the
	// system prompt per request.
	retrievalTopK = 8

	// historyLimit caps how many prior messages of the thread are sent
	// to the model.
	historyLimit = 20
)

// ChatUsecase implements the retrieval-augmented chat flow
type ChatUsecase struct {
	threadRepo    repository.ThreadRepository
	messageRepo   repository.MessageRepository
	embeddingRepo repository.EmbeddingRepository
	validator     *validator.Validator
	llmConnector  LLMConnector
	asrConnector  ASRConnector
	logger        *zap.Logger
}

// NewUsecase creates a new chat use case
func NewUsecase(
	threadRepo repository.ThreadRepository,
	messageRepo repository.MessageRepository,
	embeddingRepo repository.EmbeddingRepository,
	validator *validator.Validator,
	llmConnector LLMConnector,
	asrConnector ASRConnector,
	logger *zap.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		threadRepo:    threadRepo,
		messageRepo:   messageRepo,
		embeddingRepo: embeddingRepo,
		validator:     validator,
		llmConnector:  llmConnector,
		asrConnector:  asrConnector,
		logger:        logger,
	}
}

// Chat runs the non-streaming RAG flow and returns the assistant reply.
func (uc *ChatUsecase) Chat(ctx context.Context, req *entity.SimpleChatRequest) (*entity.SimpleChatResponse, error) {
	if err := uc.validator.ValidateSimpleChat(req); err != nil {
		return nil, err
	}

	threadID, messages, err := uc.prepareConversation(ctx, req.ThreadID, req.Message, nil)
	if err != nil {
		return nil, err
	}

	reply, err := uc.llmConnector.ChatCompletion(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if err := uc.storeAssistantReply(ctx, threadID, reply); err != nil {
		return nil, err
	}

	return &entity.SimpleChatResponse{
		Response: reply,
		ThreadID: threadID,
	}, nil
}

// StreamChat runs the RAG flow, delivering the reply incrementally via
// onDelta. The full assistant message is persisted once the stream ends.
func (uc *ChatUsecase) StreamChat(ctx context.Context, req *entity.ChatRequest, onDelta func(delta string) error) (string, error) {
	if err := uc.validator.ValidateChat(req); err != nil {
		return "", err
	}

	threadID, messages, err := uc.prepareConversation(ctx, req.ThreadID, req.Message, req.SVGPath)
	if err != nil {
		return "", err
	}

	var reply []byte
	err = uc.llmConnector.ChatCompletionStream(ctx, messages, func(delta string) error {
		reply = append(reply, delta...)
		return onDelta(delta)
	})
	if err != nil {
		return "", fmt.Errorf("stream chat completion: %w", err)
	}

	if err := uc.storeAssistantReply(ctx, threadID, string(reply)); err != nil {
		return "", err
	}

	return threadID, nil
}

// TranscribeAudio converts spoken input into text for the chat flow.
func (uc *ChatUsecase) TranscribeAudio(ctx context.Context, audioData []byte, filename string) (string, error) {
	transcription, err := uc.asrConnector.TranscribeBytes(ctx, audioData, filename)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return transcription, nil
}

// GetThreadMessages returns the message history of a thread.
func (uc *ChatUsecase) GetThreadMessages(ctx context.Context, threadID string) ([]entity.Message, error) {
	if _, err := uc.threadRepo.GetThreadByID(ctx, threadID); err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}

	messages, err := uc.messageRepo.GetMessagesByThread(ctx, threadID, 0)
	if err != nil {
		return nil, fmt.Errorf("get thread messages: %w", err)
	}
	return messages, nil
}

// prepareConversation ensures the thread exists, persists the user turn
// with its embedding, retrieves knowledge context and assembles the
// message list for the model.
func (uc *ChatUsecase) prepareConversation(ctx context.Context, requestThreadID *string, userMessage string, svgPath *string) (string, []entity.ChatMessage, error) {
	threadID := uuid.New().String()
	if requestThreadID != nil && *requestThreadID != "" {
		threadID = *requestThreadID
	}

	thread, err := uc.threadRepo.GetOrCreateThread(ctx, threadID, threadTitle(userMessage))
	if err != nil {
		return "", nil, fmt.Errorf("ensure thread: %w", err)
	}

	history, err := uc.messageRepo.GetMessagesByThread(ctx, thread.ID, historyLimit)
	if err != nil {
		return "", nil, fmt.Errorf("load thread history: %w", err)
	}

	userMsg, err := uc.messageRepo.CreateMessage(ctx, entity.Message{
		ID:       uuid.New().String(),
		ThreadID: thread.ID,
		Role:     entity.RoleUser,
		Content:  userMessage,
	})
	if err != nil {
		return "", nil, fmt.Errorf("store user message: %w", err)
	}

	queryVector, err := uc.llmConnector.Embed(ctx, userMessage)
	if err != nil {
		return "", nil, fmt.Errorf("embed user message: %w", err)
	}

	if _, err := uc.embeddingRepo.CreateEmbedding(ctx, userMsg.ID, queryVector); err != nil {
		return "", nil, fmt.Errorf("store user message embedding: %w", err)
	}

	chunks, err := uc.embeddingRepo.SearchSimilar(ctx, entity.RetrievalQuery{
		Text: userMessage,
		TopK: retrievalTopK,
	}, queryVector)
	if err != nil {
		// Retrieval failure degrades to an un-grounded answer rather
		// than failing the whole chat request.
		ctxzap.Warn(ctx, "knowledge retrieval failed, answering without context", zap.Error(err))
		chunks = nil
	}

	ctxzap.Info(ctx, "conversation prepared",
		zap.String("thread_id", thread.ID),
		zap.Int("history_messages", len(history)),
		zap.Int("retrieved_chunks", len(chunks)),
	)

	messages := make([]entity.ChatMessage, 0, len(history)+2)
	messages = append(messages, entity.ChatMessage{
		Role:    entity.RoleSystem,
		Content: buildSystemPrompt(chunks, svgPath),
	})
	for _, m := range history {
		// Knowledge chunks live in system-role messages; they enter the
		// prompt via retrieval, not as raw history.
		if m.Role == entity.RoleSystem {
			continue
		}
		messages = append(messages, entity.ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, entity.ChatMessage{Role: entity.RoleUser, Content: userMessage})

	return thread.ID, messages, nil
}

func (uc *ChatUsecase) storeAssistantReply(ctx context.Context, threadID, reply string) error {
	assistantMsg, err := uc.messageRepo.CreateMessage(ctx, entity.Message{
		ID:       uuid.New().String(),
		ThreadID: threadID,
		Role:     entity.RoleAssistant,
		Content:  reply,
	})
	if err != nil {
		return fmt.Errorf("store assistant message: %w", err)
	}

	vector, err := uc.llmConnector.Embed(ctx, reply)
	if err != nil {
		ctxzap.Warn(ctx, "embedding assistant reply failed", zap.Error(err))
		return nil
	}
	if _, err := uc.embeddingRepo.CreateEmbedding(ctx, assistantMsg.ID, vector); err != nil {
		ctxzap.Warn(ctx, "storing assistant reply embedding failed", zap.Error(err))
	}
	return nil
}

// threadTitle derives a short title from the first user message.
func threadTitle(message string) string {
	const maxTitle = 60
	if len(message) <= maxTitle {
		return message
	}
	return message[:maxTitle]
}
