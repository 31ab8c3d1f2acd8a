package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

var (
	sessionCandidate string
	sessionRole      string
	sessionQuestions int
	sessionsJSON     bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage interview sessions",
}

var sessionsNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new interview session",
	Args:  cobra.NoArgs,
	RunE:  runSessionsNew,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show [session-id]",
	Short: "Show a session and its transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

func init() {
	sessionsNewCmd.Flags().StringVar(&sessionCandidate, "candidate", "", "candidate name")
	sessionsNewCmd.Flags().StringVar(&sessionRole, "role", "", "role being interviewed for")
	sessionsNewCmd.Flags().IntVarP(&sessionQuestions, "questions", "n", 0, "number of questions (default 8)")
	sessionsListCmd.Flags().BoolVar(&sessionsJSON, "json", false, "output as JSON")
	sessionsCmd.AddCommand(sessionsNewCmd, sessionsListCmd, sessionsShowCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsNew(cmd *cobra.Command, _ []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	session, err := interviewService.CreateSession(context.Background(), sessionCandidate, sessionRole, sessionQuestions)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	cmd.Printf("Created session %s (%d questions)\n", session.ID, session.QuestionCount)
	return nil
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	sessions, err := interviewService.ListSessions(context.Background())
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}

	if sessionsJSON {
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal sessions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions.")
		return nil
	}
	for i := range sessions {
		s := &sessions[i]
		name := s.CandidateName
		if name == "" {
			name = "(unnamed)"
		}
		cmd.Printf("  %s  %-12s %s", s.ID, s.Status, name)
		if s.Role != "" {
			cmd.Printf(" / %s", s.Role)
		}
		cmd.Println()
	}
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	if interviewService == nil {
		return errors.New("interview service not configured")
	}

	ctx := context.Background()
	session, err := interviewService.GetSession(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	questions, err := interviewService.Questions(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	cmd.Printf("Session %s (%s)\n", session.ID, session.Status)
	if session.CandidateName != "" {
		cmd.Printf("Candidate: %s\n", session.CandidateName)
	}
	if session.Role != "" {
		cmd.Printf("Role: %s\n", session.Role)
	}
	cmd.Printf("Questions: %d of %d asked\n", len(questions), session.QuestionCount)

	for i := range questions {
		printQuestion(cmd, &questions[i])
	}
	return nil
}

func printQuestion(cmd *cobra.Command, q *domain.Question) {
	cmd.Println()
	cmd.Printf("Q%d: %s\n", q.Order, q.Text)
	if q.Answer == "" {
		cmd.Println("    (unanswered)")
		return
	}
	cmd.Printf("A:  %s\n", q.Answer)
	if q.Evaluation != nil {
		printEvaluation(cmd, q.Evaluation)
	}
}

func printEvaluation(cmd *cobra.Command, e *domain.Evaluation) {
	cmd.Printf("    Scores: correctness %.1f, completeness %.1f, clarity %.1f, overall %.1f\n",
		e.CorrectnessScore, e.CompletenessScore, e.ClarityScore, e.OverallScore)
	if e.Feedback != "" {
		cmd.Printf("    Feedback: %s\n", e.Feedback)
	}
	if len(e.Strengths) > 0 {
		cmd.Printf("    Strengths: %s\n", strings.Join(e.Strengths, "; "))
	}
	if len(e.Improvements) > 0 {
		cmd.Printf("    Improvements: %s\n", strings.Join(e.Improvements, "; "))
	}
}
