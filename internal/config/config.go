// Package config loads application configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Defaults.
const (
	DefaultOllamaURL      = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultLLMModel       = "llama3.1:8b-instruct-q4_K_M"

	DefaultChunkSize     = 500
	DefaultChunkOverlap  = 100
	DefaultMaxChunks     = 3
	DefaultQuestionCount = 8

	DefaultEmbedTimeout    = 60 * time.Second
	DefaultGenerateTimeout = 120 * time.Second

	DefaultVectorProvider = "memory"
)

// Config is the application configuration.
type Config struct {
	Ollama    OllamaConfig    `toml:"ollama"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Interview InterviewConfig `toml:"interview"`
	Vector    VectorConfig    `toml:"vector"`
	Storage   StorageConfig   `toml:"storage"`
	Logging   LoggingConfig   `toml:"logging"`
}

// OllamaConfig configures the Ollama model server.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL.
	BaseURL string `toml:"base_url"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// LLMModel is the generation model name.
	LLMModel string `toml:"llm_model"`

	// EmbedTimeoutSeconds is the per-request embedding timeout.
	EmbedTimeoutSeconds int `toml:"embed_timeout_seconds"`

	// GenerateTimeoutSeconds is the per-request generation timeout.
	GenerateTimeoutSeconds int `toml:"generate_timeout_seconds"`

	// MaxInFlight bounds concurrent requests to the server.
	MaxInFlight int `toml:"max_in_flight"`

	// RequestsPerSecond paces request starts. Zero disables pacing.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// ChunkingConfig configures the word-window chunker.
type ChunkingConfig struct {
	// Size is the window size in words.
	Size int `toml:"size"`

	// Overlap is the overlap between windows in words.
	Overlap int `toml:"overlap"`
}

// InterviewConfig configures interview orchestration.
type InterviewConfig struct {
	// QuestionCount is the default question budget per session.
	QuestionCount int `toml:"question_count"`

	// MaxChunks is the retrieval depth for reference context.
	MaxChunks int `toml:"max_chunks"`
}

// VectorConfig selects the vector store backend.
type VectorConfig struct {
	// Provider is "memory" or "chroma".
	Provider string `toml:"provider"`

	// URL is the server URL for remote providers.
	URL string `toml:"url"`

	// MaxInFlight bounds concurrent requests to remote providers.
	// Zero disables the bound.
	MaxInFlight int `toml:"max_in_flight"`
}

// StorageConfig configures durable storage.
type StorageConfig struct {
	// DataDir is the directory for the session database.
	// Empty means ~/.parley/data.
	DataDir string `toml:"data_dir"`

	// PromptDir is the directory for prompt templates.
	// Empty means ~/.parley/prompts.
	PromptDir string `toml:"prompt_dir"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`

	// Development switches to human-readable console output.
	Development bool `toml:"development"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:                DefaultOllamaURL,
			EmbeddingModel:         DefaultEmbeddingModel,
			LLMModel:               DefaultLLMModel,
			EmbedTimeoutSeconds:    int(DefaultEmbedTimeout.Seconds()),
			GenerateTimeoutSeconds: int(DefaultGenerateTimeout.Seconds()),
			MaxInFlight:            2,
		},
		Chunking: ChunkingConfig{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Interview: InterviewConfig{
			QuestionCount: DefaultQuestionCount,
			MaxChunks:     DefaultMaxChunks,
		},
		Vector: VectorConfig{
			Provider: DefaultVectorProvider,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given TOML file path, then applies
// environment overrides. An empty path means ~/.parley/config.toml; a
// missing file is not an error. A .env file in the working directory is
// loaded first so both sources feed the same override pass.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Missing .env is fine.
	_ = godotenv.Load()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		path = filepath.Join(home, ".parley", "config.toml")
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment only.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Chunking.Size <= c.Chunking.Overlap {
		return fmt.Errorf("chunking size (%d) must exceed overlap (%d)",
			c.Chunking.Size, c.Chunking.Overlap)
	}
	if c.Chunking.Overlap < 0 {
		return fmt.Errorf("chunking overlap must not be negative")
	}
	if c.Interview.MaxChunks <= 0 {
		return fmt.Errorf("interview max_chunks must be positive")
	}
	return nil
}

// EmbedTimeout returns the embedding timeout as a duration.
func (c *Config) EmbedTimeout() time.Duration {
	return time.Duration(c.Ollama.EmbedTimeoutSeconds) * time.Second
}

// GenerateTimeout returns the generation timeout as a duration.
func (c *Config) GenerateTimeout() time.Duration {
	return time.Duration(c.Ollama.GenerateTimeoutSeconds) * time.Second
}

// applyEnv overrides config fields from PARLEY_* environment variables.
func applyEnv(cfg *Config) {
	setString(&cfg.Ollama.BaseURL, "PARLEY_OLLAMA_URL")
	setString(&cfg.Ollama.EmbeddingModel, "PARLEY_EMBEDDING_MODEL")
	setString(&cfg.Ollama.LLMModel, "PARLEY_LLM_MODEL")
	setInt(&cfg.Chunking.Size, "PARLEY_CHUNK_SIZE")
	setInt(&cfg.Chunking.Overlap, "PARLEY_CHUNK_OVERLAP")
	setInt(&cfg.Interview.QuestionCount, "PARLEY_QUESTION_COUNT")
	setInt(&cfg.Interview.MaxChunks, "PARLEY_MAX_CHUNKS")
	setString(&cfg.Vector.Provider, "PARLEY_VECTOR_PROVIDER")
	setString(&cfg.Vector.URL, "PARLEY_VECTOR_URL")
	setInt(&cfg.Vector.MaxInFlight, "PARLEY_VECTOR_MAX_IN_FLIGHT")
	setString(&cfg.Storage.DataDir, "PARLEY_DATA_DIR")
	setString(&cfg.Storage.PromptDir, "PARLEY_PROMPT_DIR")
	setString(&cfg.Logging.Level, "PARLEY_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

func setInt(dst *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*dst = parsed
		}
	}
}
