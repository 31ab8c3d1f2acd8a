package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

func TestEmbed(t *testing.T) {
	var gotReq embedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path = %s, want /api/embeddings", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL, Model: "test-model"})
	embedding, err := svc.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	if gotReq.Model != "test-model" || gotReq.Prompt != "hello" {
		t.Errorf("request = %+v", gotReq)
	}
	if len(embedding) != 3 || embedding[0] != 0.1 {
		t.Errorf("embedding = %v", embedding)
	}
}

func TestEmbedBatchOneRequestPerText(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{1}})
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	embeddings, err := svc.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("EmbedBatch() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(embeddings) != 3 {
		t.Errorf("len(embeddings) = %d, want 3", len(embeddings))
	}
}

func TestEmbedServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	_, err := svc.Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("Embed() error = %v, want ErrNetwork", err)
	}
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s, want /api/tags", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer server.Close()

	svc := NewEmbeddingService(Config{BaseURL: server.URL})
	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestPingUnreachable(t *testing.T) {
	svc := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:1"})
	if err := svc.Ping(context.Background()); !errors.Is(err, domain.ErrNetwork) {
		t.Errorf("Ping() error = %v, want ErrNetwork", err)
	}
}

func TestDefaults(t *testing.T) {
	svc := NewEmbeddingService(Config{})
	if svc.ModelName() != DefaultModel {
		t.Errorf("ModelName() = %s, want %s", svc.ModelName(), DefaultModel)
	}
	if svc.Dimensions() != DefaultDimensions {
		t.Errorf("Dimensions() = %d, want %d", svc.Dimensions(), DefaultDimensions)
	}
}
