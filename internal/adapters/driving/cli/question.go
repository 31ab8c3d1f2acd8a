package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var questionCmd = &cobra.Command{
	Use:   "question [session-id]",
	Short: "Generate the next interview question",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestion,
}

func init() {
	rootCmd.AddCommand(questionCmd)
}

func runQuestion(cmd *cobra.Command, args []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	question, err := interviewService.NextQuestion(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("generate question: %w", err)
	}

	cmd.Printf("Q%d [%s]\n\n%s\n", question.Order, question.ID, question.Text)
	return nil
}
