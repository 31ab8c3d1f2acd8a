package extractors

import (
	"testing"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	for _, format := range []domain.Format{domain.FormatPDF, domain.FormatDocx, domain.FormatPlaintext} {
		if _, ok := registry.For(format); !ok {
			t.Errorf("DefaultRegistry() missing extractor for %s", format)
		}
	}

	if _, ok := registry.For(domain.Format("markdown")); ok {
		t.Error("DefaultRegistry() returned extractor for unknown format")
	}
}
