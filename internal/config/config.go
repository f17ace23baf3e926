package config

import (
	"flag"
	"fmt"
	"time"

	pkgRetry "github.com/achitaan/AR-diagass/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int           `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// External service configurations
	OpenAICfg OpenAIConfig       `envPrefix:"OPENAI_"`
	ASRCfg    ASRConnectorConfig `envPrefix:"ASR_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Authentication
	Debug    bool   `env:"DEBUG" envDefault:"false"`
	DevToken string `env:"DEV_TOKEN" envDefault:"dev-token"`

	// Assessment rule tables (optional JSON override of built-in vocab)
	AssessmentRulesPath string `env:"ASSESSMENT_RULES_PATH"`

	// Ingestion configuration
	IngestionCfg IngestionConfig `envPrefix:"INGESTION_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OpenAIConfig holds OpenAI client configuration for chat and embeddings
type OpenAIConfig struct {
	APIKey            string               `env:"API_KEY,notEmpty"`
	ChatModel         string               `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel    string               `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	VectorDim         int                  `env:"VECTOR_DIM" envDefault:"1536"`
	MaxTokens         int                  `env:"MAX_TOKENS" envDefault:"1024"`
	Temperature       float64              `env:"TEMPERATURE" envDefault:"0.7"`
	EmbeddingCacheTTL time.Duration        `env:"EMBEDDING_CACHE_TTL" envDefault:"15m"`
	Retry             pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ASRConnectorConfig holds the Whisper transcription service configuration
type ASRConnectorConfig struct {
	HTTPClientConfig
	TranscribeEndpoint string               `env:"TRANSCRIBE_ENDPOINT" envDefault:"/v1/audio/transcriptions"`
	Model              string               `env:"MODEL" envDefault:"whisper-1"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"https://api.openai.com"`
}

// IngestionConfig holds document ingestion limits and chunking parameters
type IngestionConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`
	ChunkSize     int   `env:"CHUNK_SIZE" envDefault:"1000"`
	ChunkOverlap  int   `env:"CHUNK_OVERLAP" envDefault:"200"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	if cfg.OpenAICfg.VectorDim < 1 {
		errors = append(errors, fmt.Sprintf("OPENAI_VECTOR_DIM must be positive, got %d", cfg.OpenAICfg.VectorDim))
	}

	if cfg.IngestionCfg.ChunkOverlap >= cfg.IngestionCfg.ChunkSize {
		errors = append(errors, fmt.Sprintf("INGESTION_CHUNK_OVERLAP (%d) must be smaller than INGESTION_CHUNK_SIZE (%d)",
			cfg.IngestionCfg.ChunkOverlap, cfg.IngestionCfg.ChunkSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", errors[0])
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
