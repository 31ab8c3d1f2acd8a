// Package vector selects a vector store implementation by provider name.
package vector

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/adapters/driven/vector/chroma"
	"github.com/custodia-labs/parley-cli/internal/adapters/driven/vector/memory"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/ratelimit"
)

// Provider names.
const (
	ProviderMemory = "memory"
	ProviderChroma = "chroma"
)

// Config selects and configures a vector store backend.
type Config struct {
	// Provider picks the backend: "memory" or "chroma".
	Provider string

	// URL is the server URL for remote providers.
	URL string

	// MaxInFlight bounds concurrent requests to remote providers.
	// Zero means unbounded.
	MaxInFlight int
}

// New builds the vector store for the configured provider.
func New(cfg Config, logger *zap.Logger) (driven.VectorStore, error) {
	switch cfg.Provider {
	case "", ProviderMemory:
		return memory.New(), nil
	case ProviderChroma:
		var gate *ratelimit.Gate
		if cfg.MaxInFlight > 0 {
			gate = ratelimit.NewGate(ratelimit.Config{MaxInFlight: int64(cfg.MaxInFlight)})
		}
		return chroma.New(chroma.Config{URL: cfg.URL, Gate: gate}, logger)
	default:
		return nil, fmt.Errorf("unknown vector store provider: %s", cfg.Provider)
	}
}
