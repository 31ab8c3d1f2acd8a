package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

func TestExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, domain.ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction", err)
	}
}

func TestExtractNotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.pdf")
	if err := os.WriteFile(path, []byte("plain text pretending"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := New().Extract(context.Background(), path)
	if !errors.Is(err, domain.ErrExtraction) {
		t.Errorf("Extract() error = %v, want ErrExtraction", err)
	}
}

func TestFormats(t *testing.T) {
	formats := New().Formats()
	if len(formats) != 1 || formats[0] != domain.FormatPDF {
		t.Errorf("Formats() = %v, want [pdf]", formats)
	}
}
