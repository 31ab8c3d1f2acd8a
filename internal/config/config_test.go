package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Ollama.BaseURL != DefaultOllamaURL {
		t.Errorf("BaseURL = %s", cfg.Ollama.BaseURL)
	}
	if cfg.Chunking.Size != 500 || cfg.Chunking.Overlap != 100 {
		t.Errorf("chunking = %+v", cfg.Chunking)
	}
	if cfg.Interview.QuestionCount != 8 || cfg.Interview.MaxChunks != 3 {
		t.Errorf("interview = %+v", cfg.Interview)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ollama.LLMModel != DefaultLLMModel {
		t.Errorf("LLMModel = %s", cfg.Ollama.LLMModel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ollama]
base_url = "http://ollama.internal:11434"
llm_model = "llama3.1:70b"

[chunking]
size = 200
overlap = 40

[vector]
provider = "chroma"
url = "http://localhost:8000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ollama.BaseURL != "http://ollama.internal:11434" {
		t.Errorf("BaseURL = %s", cfg.Ollama.BaseURL)
	}
	if cfg.Chunking.Size != 200 || cfg.Chunking.Overlap != 40 {
		t.Errorf("chunking = %+v", cfg.Chunking)
	}
	if cfg.Vector.Provider != "chroma" {
		t.Errorf("vector = %+v", cfg.Vector)
	}
	// Untouched fields keep defaults.
	if cfg.Ollama.EmbeddingModel != DefaultEmbeddingModel {
		t.Errorf("EmbeddingModel = %s", cfg.Ollama.EmbeddingModel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_LLM_MODEL", "mistral:7b")
	t.Setenv("PARLEY_CHUNK_SIZE", "300")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Ollama.LLMModel != "mistral:7b" {
		t.Errorf("LLMModel = %s", cfg.Ollama.LLMModel)
	}
	if cfg.Chunking.Size != 300 {
		t.Errorf("Size = %d", cfg.Chunking.Size)
	}
}

func TestValidateRejectsOverlapNotBelowSize(t *testing.T) {
	cfg := Default()
	cfg.Chunking.Size = 100
	cfg.Chunking.Overlap = 100
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted overlap == size")
	}
}
