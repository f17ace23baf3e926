package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/entity"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/achitaan/AR-diagass/internal/repository"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// knowledgeTitlePrefix marks threads that hold ingested knowledge-base
// chunks rather than user conversations.
const knowledgeTitlePrefix = "knowledge:"

// embedBatchSize caps how many chunks go to the embedding API per call.
const embedBatchSize = 64

// IngestionUsecase loads documents into the knowledge base: extract,
// chunk, embed, store.
type IngestionUsecase struct {
	cfg           config.IngestionConfig
	threadRepo    repository.ThreadRepository
	messageRepo   repository.MessageRepository
	embeddingRepo repository.EmbeddingRepository
	documentRepo  repository.DocumentRepository
	validator     *validator.Validator
	splitter      *Splitter
	embedder      Embedder
	logger        *zap.Logger
}

// NewUsecase creates a new ingestion use case
func NewUsecase(
	cfg config.IngestionConfig,
	threadRepo repository.ThreadRepository,
	messageRepo repository.MessageRepository,
	embeddingRepo repository.EmbeddingRepository,
	documentRepo repository.DocumentRepository,
	validator *validator.Validator,
	embedder Embedder,
	logger *zap.Logger,
) *IngestionUsecase {
	return &IngestionUsecase{
		cfg:           cfg,
		threadRepo:    threadRepo,
		messageRepo:   messageRepo,
		embeddingRepo: embeddingRepo,
		documentRepo:  documentRepo,
		validator:     validator,
		splitter:      NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		embedder:      embedder,
		logger:        logger,
	}
}

// IngestFile chunks and embeds one uploaded document. Its chunks are
// stored as system messages in a dedicated knowledge thread.
func (uc *IngestionUsecase) IngestFile(ctx context.Context, filename string, data []byte) (*entity.Document, error) {
	if int64(len(data)) > uc.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", entity.ErrFileTooLarge, len(data), uc.cfg.MaxFileSize)
	}

	text, err := extractText(filename, data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	chunks := uc.splitter.Split(text)
	if len(chunks) == 0 {
		return nil, entity.ErrEmptyDocument
	}

	safeName := validator.SanitizeFilename(filename)
	thread, err := uc.threadRepo.CreateThread(ctx, entity.Thread{
		ID:    uuid.New().String(),
		Title: knowledgeTitlePrefix + safeName,
	})
	if err != nil {
		return nil, fmt.Errorf("create knowledge thread: %w", err)
	}

	if err := uc.storeChunks(ctx, thread.ID, chunks); err != nil {
		return nil, err
	}

	document, err := uc.documentRepo.CreateDocument(ctx, entity.Document{
		ThreadID:   thread.ID,
		Filename:   safeName,
		SourceType: strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."),
		ChunkCount: len(chunks),
	})
	if err != nil {
		return nil, fmt.Errorf("record document: %w", err)
	}

	ctxzap.Info(ctx, "document ingested",
		zap.String("filename", safeName),
		zap.String("thread_id", thread.ID),
		zap.Int("chunks", len(chunks)),
	)

	return document, nil
}

// IngestGuidelines loads a batch of named guideline texts, one knowledge
// thread per entry. Used to seed the knowledge base from bundled content.
func (uc *IngestionUsecase) IngestGuidelines(ctx context.Context, guidelines map[string]string) (int, error) {
	ingested := 0
	for name, text := range guidelines {
		chunks := uc.splitter.Split(text)
		if len(chunks) == 0 {
			continue
		}

		thread, err := uc.threadRepo.CreateThread(ctx, entity.Thread{
			ID:    uuid.New().String(),
			Title: knowledgeTitlePrefix + name,
		})
		if err != nil {
			return ingested, fmt.Errorf("create guideline thread %q: %w", name, err)
		}

		if err := uc.storeChunks(ctx, thread.ID, chunks); err != nil {
			return ingested, fmt.Errorf("store guideline %q: %w", name, err)
		}
		ingested++
	}

	ctxzap.Info(ctx, "guidelines ingested", zap.Int("count", ingested))
	return ingested, nil
}

// Stats reports the state of the knowledge base.
func (uc *IngestionUsecase) Stats(ctx context.Context) (*entity.KnowledgeStats, error) {
	chunks, err := uc.messageRepo.CountMessagesByRole(ctx, entity.RoleSystem)
	if err != nil {
		return nil, fmt.Errorf("count knowledge chunks: %w", err)
	}

	embeddings, err := uc.embeddingRepo.CountEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("count embeddings: %w", err)
	}

	threads, err := uc.threadRepo.CountThreadsByTitlePattern(ctx, []string{knowledgeTitlePrefix})
	if err != nil {
		return nil, fmt.Errorf("count knowledge threads: %w", err)
	}

	return &entity.KnowledgeStats{
		KnowledgeChunks:  chunks,
		Embeddings:       embeddings,
		KnowledgeThreads: threads,
		ReadyForRAG:      chunks > 0 && embeddings > 0,
	}, nil
}

// ListDocuments returns the ingested document records.
func (uc *IngestionUsecase) ListDocuments(ctx context.Context) ([]entity.Document, error) {
	documents, err := uc.documentRepo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

// storeChunks writes chunks as system messages with embeddings, batching
// the embedding calls.
func (uc *IngestionUsecase) storeChunks(ctx context.Context, threadID string, chunks []string) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		vectors, err := uc.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			return fmt.Errorf("embed chunks: %w", err)
		}

		for i, chunk := range batch {
			message, err := uc.messageRepo.CreateMessage(ctx, entity.Message{
				ID:       uuid.New().String(),
				ThreadID: threadID,
				Role:     entity.RoleSystem,
				Content:  chunk,
			})
			if err != nil {
				return fmt.Errorf("store chunk: %w", err)
			}
			if _, err := uc.embeddingRepo.CreateEmbedding(ctx, message.ID, vectors[i]); err != nil {
				return fmt.Errorf("store chunk embedding: %w", err)
			}
		}
	}
	return nil
}
