package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/parley-cli/internal/adapters/driving/tui"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [session-id]",
	Short: "Run an interactive interview session",
	Long: `Runs the interview loop in a full-screen terminal UI: each question
is generated against the session's resume and reference material, your
answer is evaluated and scored, and the transcript is persisted.

Controls:
  Ctrl+S - Submit answer
  Enter  - Next question (after an evaluation)
  Ctrl+C - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runInterview,
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, args []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := context.Background()
	session, err := interviewService.GetSession(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	questions, err := interviewService.Questions(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}
	answered := 0
	for i := range questions {
		if questions[i].Answer != "" {
			answered++
		}
	}
	if answered >= session.QuestionCount {
		cmd.Println("Session is already complete.")
		return nil
	}

	model := tui.New(ctx, interviewService, session.ID, answered, session.QuestionCount)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
