package chroma

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/ratelimit"
)

// fakeChroma mimics the subset of the Chroma v2 REST API the store uses.
type fakeChroma struct {
	collections map[string]string // name -> id
	upserts     map[string]chromaUpsertRequest
	queries     map[string]chromaQueryRequest
	nameLookups int
}

func newFakeChroma() *fakeChroma {
	return &fakeChroma{
		collections: make(map[string]string),
		upserts:     make(map[string]chromaUpsertRequest),
		queries:     make(map[string]chromaQueryRequest),
	}
}

func (f *fakeChroma) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, collectionsRoot)
		switch {
		case path == "" && r.Method == http.MethodGet:
			var list []chromaCollection
			for name, id := range f.collections {
				list = append(list, chromaCollection{ID: id, Name: name})
			}
			json.NewEncoder(w).Encode(list)

		case path == "" && r.Method == http.MethodPost:
			var req chromaCreateRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Metadata["hnsw:space"] != "cosine" {
				t.Errorf("create metadata = %v, want cosine space", req.Metadata)
			}
			id := "id-" + req.Name
			f.collections[req.Name] = id
			json.NewEncoder(w).Encode(chromaCollection{ID: id, Name: req.Name})

		case strings.HasSuffix(path, "/upsert"):
			id := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/upsert")
			var req chromaUpsertRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.upserts[id] = req
			w.Write([]byte(`{}`))

		case strings.HasSuffix(path, "/query"):
			id := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/query")
			var req chromaQueryRequest
			json.NewDecoder(r.Body).Decode(&req)
			f.queries[id] = req
			json.NewEncoder(w).Encode(chromaQueryResponse{
				IDs:       [][]string{{"resume_s1_chunk_0", "resume_s1_chunk_1"}},
				Distances: [][]float32{{0.1, 0.3}},
				Documents: [][]string{{"first chunk", "second chunk"}},
				Metadatas: [][]map[string]any{{{"chunk_index": float64(0)}, {"chunk_index": float64(1)}}},
			})

		case strings.HasSuffix(path, "/count"):
			json.NewEncoder(w).Encode(2)

		case r.Method == http.MethodGet:
			f.nameLookups++
			name := strings.TrimPrefix(path, "/")
			id, ok := f.collections[name]
			if !ok {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(chromaCollection{ID: id, Name: name})

		case r.Method == http.MethodDelete:
			name := strings.TrimPrefix(path, "/")
			if _, ok := f.collections[name]; !ok {
				http.NotFound(w, r)
				return
			}
			delete(f.collections, name)
			w.Write([]byte(`{}`))

		default:
			http.NotFound(w, r)
		}
	}
}

func newTestStore(t *testing.T) (*Store, *fakeChroma) {
	t.Helper()
	fake := newFakeChroma()
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	store, err := New(Config{URL: server.URL}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store, fake
}

func TestUpsertCreatesCollection(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, "resume_s1", []driven.VectorEntry{
		{ID: "resume_s1_chunk_0", Text: "hello", Embedding: []float32{1, 0}, Metadata: map[string]any{"chunk_index": 0}},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if _, ok := fake.collections["resume_s1"]; !ok {
		t.Fatal("collection not created")
	}
	upsert := fake.upserts["id-resume_s1"]
	if len(upsert.IDs) != 1 || upsert.IDs[0] != "resume_s1_chunk_0" {
		t.Errorf("upsert IDs = %v", upsert.IDs)
	}
	if upsert.Documents[0] != "hello" {
		t.Errorf("upsert documents = %v", upsert.Documents)
	}
}

func TestQuery(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	fake.collections["resume_s1"] = "id-resume_s1"

	hits, err := store.Query(ctx, "resume_s1", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].ID != "resume_s1_chunk_0" || hits[0].Text != "first chunk" || hits[0].Distance != 0.1 {
		t.Errorf("hits[0] = %+v", hits[0])
	}

	sent := fake.queries["id-resume_s1"]
	if sent.NResults != 2 || len(sent.QueryEmbeddings) != 1 {
		t.Errorf("query request = %+v", sent)
	}
}

func TestQueryZeroKReturnsWholeCollection(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()
	fake.collections["resume_s1"] = "id-resume_s1"

	hits, err := store.Query(ctx, "resume_s1", []float32{1, 0}, 0)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}

	// n_results comes from the collection count, not an arbitrary cap.
	sent := fake.queries["id-resume_s1"]
	if sent.NResults != 2 {
		t.Errorf("NResults = %d, want the collection count 2", sent.NResults)
	}
}

func TestCountMissingCollectionIsZero(t *testing.T) {
	store, _ := newTestStore(t)
	count, err := store.Count(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestCount(t *testing.T) {
	store, fake := newTestStore(t)
	fake.collections["resume_s1"] = "id-resume_s1"

	count, err := store.Count(context.Background(), "resume_s1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestCountUsesCachedCollectionID(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	err := store.Upsert(ctx, "resume_s1", []driven.VectorEntry{
		{ID: "resume_s1_chunk_0", Text: "hello", Embedding: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	fake.nameLookups = 0
	if _, err := store.Count(ctx, "resume_s1"); err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if fake.nameLookups != 0 {
		t.Errorf("Count() resolved the collection by name %d times, want cache hit", fake.nameLookups)
	}
}

func TestGateRejectsWhenAdmissionFails(t *testing.T) {
	store, fake := newTestStore(t)
	fake.collections["resume_s1"] = "id-resume_s1"

	gate := ratelimit.NewGate(ratelimit.Config{MaxInFlight: 1})
	store.gate = gate

	// Hold the only slot so the store's request cannot be admitted
	// before its context is cancelled.
	if err := gate.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer gate.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Count(ctx, "resume_s1"); err == nil {
		t.Error("Count() with a full gate and cancelled context succeeded")
	}
}

func TestDeleteCollection(t *testing.T) {
	store, fake := newTestStore(t)
	fake.collections["resume_s1"] = "id-resume_s1"

	if err := store.DeleteCollection(context.Background(), "resume_s1"); err != nil {
		t.Fatalf("DeleteCollection() error = %v", err)
	}
	if _, ok := fake.collections["resume_s1"]; ok {
		t.Error("collection still present")
	}

	err := store.DeleteCollection(context.Background(), "resume_s1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteCollection() error = %v, want ErrNotFound", err)
	}
}

func TestListCollections(t *testing.T) {
	store, fake := newTestStore(t)
	fake.collections["resume_s1"] = "a"
	fake.collections["reference_s1"] = "b"

	names, err := store.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(names) != 2 {
		t.Errorf("ListCollections() = %v", names)
	}
}

func TestNewRequiresURL(t *testing.T) {
	if _, err := New(Config{}, zap.NewNop()); err == nil {
		t.Error("New() with empty URL succeeded")
	}
}
