package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check connectivity to the model services",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	report := interviewService.Health(context.Background())

	cmd.Printf("Embedding (%s): %s\n", report.EmbeddingModel, okLabel(report.EmbeddingOK))
	cmd.Printf("LLM       (%s): %s\n", report.LLMModel, okLabel(report.LLMOK))

	if !report.EmbeddingOK || !report.LLMOK {
		return errors.New("one or more model services are unreachable")
	}
	return nil
}

func okLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "unreachable"
}
