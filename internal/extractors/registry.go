// Package extractors wires the built-in document extractors into a
// format-keyed registry.
package extractors

import (
	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/extractors/docx"
	"github.com/custodia-labs/parley-cli/internal/extractors/pdf"
	"github.com/custodia-labs/parley-cli/internal/extractors/plaintext"
)

// Registry maps document formats to their extractors.
type Registry map[domain.Format]driven.Extractor

// DefaultRegistry returns a registry covering all built-in extractors.
func DefaultRegistry() Registry {
	registry := make(Registry)
	for _, extractor := range []driven.Extractor{
		pdf.New(),
		docx.New(),
		plaintext.New(),
	} {
		for _, format := range extractor.Formats() {
			registry[format] = extractor
		}
	}
	return registry
}

// For returns the extractor for a format.
func (r Registry) For(format domain.Format) (driven.Extractor, bool) {
	extractor, ok := r[format]
	return extractor, ok
}
