package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

func entry(id string, embedding []float32) driven.VectorEntry {
	return driven.VectorEntry{ID: id, Text: "text " + id, Embedding: embedding}
}

func TestUpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	store := New()

	err := store.Upsert(ctx, "resume_s1", []driven.VectorEntry{
		entry("a", []float32{1, 0}),
		entry("b", []float32{0, 1}),
		entry("c", []float32{0.9, 0.1}),
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	hits, err := store.Query(ctx, "resume_s1", []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].ID != "a" || hits[1].ID != "c" {
		t.Errorf("hit order = %s, %s; want a, c", hits[0].ID, hits[1].ID)
	}
	if hits[0].Distance > hits[1].Distance {
		t.Error("distances not ascending")
	}
}

func TestUpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	store := New()

	store.Upsert(ctx, "c", []driven.VectorEntry{entry("a", []float32{1, 0}), entry("b", []float32{0, 1})})
	store.Upsert(ctx, "c", []driven.VectorEntry{{ID: "a", Text: "updated", Embedding: []float32{0, 1}}})

	count, _ := store.Count(ctx, "c")
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	hits, _ := store.Query(ctx, "c", []float32{0, 1}, 0)
	if hits[0].ID != "a" || hits[0].Text != "updated" {
		t.Errorf("hits[0] = %+v, want updated entry a first", hits[0])
	}
}

func TestQueryUnknownCollection(t *testing.T) {
	_, err := New().Query(context.Background(), "missing", []float32{1}, 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Query() error = %v, want ErrNotFound", err)
	}
}

func TestQueryKLargerThanCollection(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Upsert(ctx, "c", []driven.VectorEntry{entry("a", []float32{1, 0})})

	hits, err := store.Query(ctx, "c", []float32{1, 0}, 10)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1", len(hits))
	}
}

func TestDimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Upsert(ctx, "c", []driven.VectorEntry{entry("a", []float32{1, 0})})

	err := store.Upsert(ctx, "c", []driven.VectorEntry{entry("b", []float32{1, 0, 0})})
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("Upsert() error = %v, want ErrDimensionMismatch", err)
	}

	_, err = store.Query(ctx, "c", []float32{1, 0, 0}, 1)
	if !errors.Is(err, domain.ErrDimensionMismatch) {
		t.Errorf("Query() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestCountUnknownCollectionIsZero(t *testing.T) {
	count, err := New().Count(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}

func TestDeleteCollection(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Upsert(ctx, "c", []driven.VectorEntry{entry("a", []float32{1})})

	if err := store.DeleteCollection(ctx, "c"); err != nil {
		t.Fatalf("DeleteCollection() error = %v", err)
	}
	if err := store.DeleteCollection(ctx, "c"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second DeleteCollection() error = %v, want ErrNotFound", err)
	}
}

func TestListCollectionsSorted(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.Upsert(ctx, "reference_s1", []driven.VectorEntry{entry("a", []float32{1})})
	store.Upsert(ctx, "resume_s1", []driven.VectorEntry{entry("b", []float32{1})})

	names, err := store.ListCollections(ctx)
	if err != nil {
		t.Fatalf("ListCollections() error = %v", err)
	}
	if len(names) != 2 || names[0] != "reference_s1" || names[1] != "resume_s1" {
		t.Errorf("ListCollections() = %v", names)
	}
}

func TestCosineDistanceZeroVector(t *testing.T) {
	if d := cosineDistance([]float32{0, 0}, []float32{1, 0}); d != 1 {
		t.Errorf("cosineDistance(zero, x) = %f, want 1", d)
	}
}
