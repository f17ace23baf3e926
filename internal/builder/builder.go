package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/achitaan/AR-diagass/internal/api"
	assessmentapi "github.com/achitaan/AR-diagass/internal/api/assessment"
	chatapi "github.com/achitaan/AR-diagass/internal/api/chat"
	ingestionapi "github.com/achitaan/AR-diagass/internal/api/ingestion"
	"github.com/achitaan/AR-diagass/internal/api/middleware"
	"github.com/achitaan/AR-diagass/internal/assessment"
	"github.com/achitaan/AR-diagass/internal/config"
	"github.com/achitaan/AR-diagass/internal/integration/asr"
	"github.com/achitaan/AR-diagass/internal/integration/openai"
	"github.com/achitaan/AR-diagass/internal/pkg/formatter"
	"github.com/achitaan/AR-diagass/internal/pkg/validator"
	"github.com/achitaan/AR-diagass/internal/repository"
	assessmentuc "github.com/achitaan/AR-diagass/internal/usecase/assessment"
	chatuc "github.com/achitaan/AR-diagass/internal/usecase/chat"
	ingestionuc "github.com/achitaan/AR-diagass/internal/usecase/ingestion"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Setup database connection
	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	// Run database migrations
	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize repositories
	threadRepo := repository.NewThreadPostgres(db)
	messageRepo := repository.NewMessagePostgres(db)
	embeddingRepo := repository.NewEmbeddingPostgres(db)
	documentRepo := repository.NewDocumentPostgres(db)
	logger.Info("Repositories initialized")

	// Initialize external service connectors (with mock support)
	var llmConnector chatuc.LLMConnector
	var embedder ingestionuc.Embedder
	var asrConnector chatuc.ASRConnector

	if cfg.EnableMocks {
		logger.Info("Using mock connectors for external services")
		mockLLM := openai.NewMockConnector(cfg.OpenAICfg.VectorDim, logger)
		llmConnector = mockLLM
		embedder = mockLLM
		asrConnector = asr.NewMockConnector(logger)
	} else {
		logger.Info("Using real connectors for external services")
		openaiConnector := openai.NewConnector(cfg.OpenAICfg, logger)
		llmConnector = openaiConnector
		embedder = openaiConnector
		asrConnector = asr.NewConnector(cfg.ASRCfg, logger)
	}

	// Initialize validators
	requestValidator := validator.NewValidator(cfg.IngestionCfg)
	logger.Info("Validators initialized")

	// Initialize assessment engine
	rules := assessment.DefaultRules()
	if cfg.AssessmentRulesPath != "" {
		rules, err = assessment.LoadRules(cfg.AssessmentRulesPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("load assessment rules: %w", err)
		}
		logger.Info("Assessment rules loaded", zap.String("path", cfg.AssessmentRulesPath))
	}
	manager := assessment.NewManager(assessment.NewBank(), rules, logger)
	logger.Info("Assessment engine initialized",
		zap.Int("question_count", manager.Bank().Total()),
	)

	// Initialize use cases
	chatUC := chatuc.NewUsecase(
		threadRepo,
		messageRepo,
		embeddingRepo,
		requestValidator,
		llmConnector,
		asrConnector,
		logger,
	)

	assessmentUC := assessmentuc.NewUsecase(
		manager,
		formatter.NewFactory(),
		requestValidator,
		logger,
	)

	ingestionUC := ingestionuc.NewUsecase(
		cfg.IngestionCfg,
		threadRepo,
		messageRepo,
		embeddingRepo,
		documentRepo,
		requestValidator,
		embedder,
		logger,
	)
	logger.Info("Use cases initialized")

	// Setup API handlers
	chatHandler := chatapi.NewHandler(chatUC, requestValidator)
	assessmentHandler := assessmentapi.NewHandler(assessmentUC)
	ingestionHandler := ingestionapi.NewHandler(cfg.IngestionCfg, ingestionUC, requestValidator)
	logger.Info("API handlers initialized")

	// Setup router
	auth := middleware.BearerAuth(cfg.DevToken, cfg.Debug)
	router := api.SetupRouter(chatHandler, assessmentHandler, ingestionHandler, auth, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server. Write timeout stays generous because chat
	// responses stream over long-lived connections.
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: logger,
	}, nil
}
