// Command parley is the interview assistant CLI.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	embeddingollama "github.com/custodia-labs/parley-cli/internal/adapters/driven/embedding/ollama"
	llmollama "github.com/custodia-labs/parley-cli/internal/adapters/driven/llm/ollama"
	promptfile "github.com/custodia-labs/parley-cli/internal/adapters/driven/prompts/file"
	"github.com/custodia-labs/parley-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/parley-cli/internal/adapters/driven/vector"
	"github.com/custodia-labs/parley-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/parley-cli/internal/config"
	"github.com/custodia-labs/parley-cli/internal/core/services"
	"github.com/custodia-labs/parley-cli/internal/extractors"
	"github.com/custodia-labs/parley-cli/internal/logger"
	"github.com/custodia-labs/parley-cli/internal/postprocessors"
	"github.com/custodia-labs/parley-cli/internal/postprocessors/chunker"
	"github.com/custodia-labs/parley-cli/internal/postprocessors/cleaner"
	"github.com/custodia-labs/parley-cli/internal/ratelimit"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "parley: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("PARLEY_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	gate := ratelimit.NewGate(ratelimit.Config{
		MaxInFlight:       int64(cfg.Ollama.MaxInFlight),
		RequestsPerSecond: cfg.Ollama.RequestsPerSecond,
	})

	embedder := embeddingollama.NewEmbeddingService(embeddingollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.EmbeddingModel,
		Timeout: cfg.EmbedTimeout(),
		Gate:    gate,
	})
	llm := llmollama.NewLLMService(llmollama.Config{
		BaseURL: cfg.Ollama.BaseURL,
		Model:   cfg.Ollama.LLMModel,
		Timeout: cfg.GenerateTimeout(),
		Gate:    gate,
	})

	vectors, err := vector.New(vector.Config{
		Provider:    cfg.Vector.Provider,
		URL:         cfg.Vector.URL,
		MaxInFlight: cfg.Vector.MaxInFlight,
	}, log)
	if err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}

	sessions, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	defer sessions.Close()

	prompts, err := promptfile.NewPromptStore(cfg.Storage.PromptDir)
	if err != nil {
		return fmt.Errorf("init prompt store: %w", err)
	}

	chunkProc, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("init chunker: %w", err)
	}
	pipeline := postprocessors.NewPipeline(cleaner.New(), chunkProc)

	ingest := services.NewIngestService(
		services.IngestConfig{},
		extractors.DefaultRegistry(),
		pipeline,
		embedder,
		vectors,
		log,
	)
	retriever := services.NewRetriever(embedder, vectors, log)
	interview := services.NewInterviewService(
		services.InterviewConfig{
			QuestionCount: cfg.Interview.QuestionCount,
			MaxChunks:     cfg.Interview.MaxChunks,
		},
		sessions, retriever, embedder, llm, prompts, log,
	)

	log.Debug("wiring complete",
		zap.String("vector_provider", cfg.Vector.Provider),
		zap.String("llm_model", cfg.Ollama.LLMModel),
	)

	return cli.Execute(cli.Services{
		Ingest:    ingest,
		Interview: interview,
		Logger:    log,
	}, version)
}
