package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var answerFromStdin bool

var answerCmd = &cobra.Command{
	Use:   "answer [question-id] [answer text]",
	Short: "Submit and evaluate an answer",
	Long: `Evaluates the candidate's answer against the session's reference
material and stores the scored evaluation with the question. Pass the
answer as an argument or pipe it via --stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnswer,
}

func init() {
	answerCmd.Flags().BoolVar(&answerFromStdin, "stdin", false, "read the answer from standard input")
	rootCmd.AddCommand(answerCmd)
}

func runAnswer(cmd *cobra.Command, args []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	answer, err := answerText(cmd, args)
	if err != nil {
		return err
	}

	evaluation, err := interviewService.EvaluateAnswer(context.Background(), args[0], answer)
	if err != nil {
		return fmt.Errorf("evaluate answer: %w", err)
	}

	printEvaluation(cmd, evaluation)
	return nil
}

func answerText(cmd *cobra.Command, args []string) (string, error) {
	if answerFromStdin {
		in := cmd.InOrStdin()
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) < 2 {
		return "", errors.New("pass the answer text as an argument or use --stdin")
	}
	return args[1], nil
}
