// Package cli wires the cobra command tree to the core services.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/ports/driving"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services. Commands check for nil so the package stays
// testable without a full wiring.
var (
	ingestService    driving.IngestService
	interviewService driving.InterviewService
	cliLogger        = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "RAG-assisted technical interview sessions from the terminal",
	Long: `Parley runs technical interview sessions grounded in the candidate's
resume and your reference material. Documents are chunked, embedded and
indexed locally; questions and evaluations come from a local model.`,
	SilenceUsage: true,
}

// Services carries the driving ports the commands depend on.
type Services struct {
	Ingest    driving.IngestService
	Interview driving.InterviewService
	Logger    *zap.Logger
}

// Execute injects the services and runs the command tree.
func Execute(s Services, v string) error {
	ingestService = s.Ingest
	interviewService = s.Interview
	if s.Logger != nil {
		cliLogger = s.Logger
	}
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}
