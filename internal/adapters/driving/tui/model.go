// Package tui implements the interactive interview loop as a Bubble
// Tea program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driving"
)

// phase is the interview loop state.
type phase int

const (
	phaseGenerating phase = iota
	phaseAnswering
	phaseEvaluating
	phaseReviewing
	phaseDone
)

type questionMsg struct{ question *domain.Question }

type evaluationMsg struct{ evaluation *domain.Evaluation }

type errMsg struct{ err error }

// Model runs one interview session question by question.
type Model struct {
	ctx       context.Context
	interview driving.InterviewService
	sessionID string

	phase    phase
	question *domain.Question
	eval     *domain.Evaluation
	answered int
	total    int

	input   textarea.Model
	spin    spinner.Model
	status  string
	lastErr error
	width   int
}

// New creates a model for the given session. total is the session's
// planned question count, answered the number already answered.
func New(ctx context.Context, interview driving.InterviewService, sessionID string, answered, total int) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your answer, press Ctrl+S to submit"
	ta.Focus()
	ta.CharLimit = 0
	ta.SetHeight(8)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		ctx:       ctx,
		interview: interview,
		sessionID: sessionID,
		phase:     phaseGenerating,
		answered:  answered,
		total:     total,
		input:     ta,
		spin:      sp,
		status:    "Generating question...",
	}
}

// Init starts the spinner and requests the first question.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.nextQuestion())
}

func (m Model) nextQuestion() tea.Cmd {
	return func() tea.Msg {
		q, err := m.interview.NextQuestion(m.ctx, m.sessionID)
		if err != nil {
			return errMsg{err}
		}
		return questionMsg{q}
	}
}

func (m Model) evaluate(answer string) tea.Cmd {
	questionID := m.question.ID
	return func() tea.Msg {
		e, err := m.interview.EvaluateAnswer(m.ctx, questionID, answer)
		if err != nil {
			return errMsg{err}
		}
		return evaluationMsg{e}
	}
}

// Update advances the interview loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(40, msg.Width-4))
		return m, nil

	case questionMsg:
		m.phase = phaseAnswering
		m.question = msg.question
		m.input.Reset()
		m.input.Focus()
		m.status = "Answer the question, Ctrl+S to submit, Ctrl+C to quit"
		return m, textarea.Blink

	case evaluationMsg:
		m.phase = phaseReviewing
		m.eval = msg.evaluation
		m.answered++
		if m.answered >= m.total {
			m.status = "Interview complete. Press any key to exit."
		} else {
			m.status = "Press Enter for the next question, q to quit."
		}
		return m, nil

	case errMsg:
		m.phase = phaseDone
		m.lastErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.phase {
		case phaseAnswering:
			if msg.Type == tea.KeyCtrlS {
				answer := strings.TrimSpace(m.input.Value())
				if answer == "" {
					m.status = "Answer is empty. Type something first."
					return m, nil
				}
				m.phase = phaseEvaluating
				m.status = "Evaluating answer..."
				return m, tea.Batch(m.spin.Tick, m.evaluate(answer))
			}
		case phaseReviewing:
			if m.answered >= m.total {
				m.phase = phaseDone
				return m, tea.Quit
			}
			switch msg.String() {
			case "q", "esc":
				m.phase = phaseDone
				return m, tea.Quit
			case "enter":
				m.phase = phaseGenerating
				m.status = "Generating question..."
				return m, tea.Batch(m.spin.Tick, m.nextQuestion())
			}
			return m, nil
		}
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current phase.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Parley Interview"))
	b.WriteString(fmt.Sprintf("  %d/%d answered\n\n", m.answered, m.total))

	switch m.phase {
	case phaseGenerating, phaseEvaluating:
		b.WriteString(m.spin.View() + " " + m.status + "\n")
	case phaseAnswering:
		b.WriteString(questionStyle.Render(fmt.Sprintf("Q%d: %s", m.question.Order, m.question.Text)))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	case phaseReviewing:
		b.WriteString(questionStyle.Render(fmt.Sprintf("Q%d: %s", m.question.Order, m.question.Text)))
		b.WriteString("\n\n")
		b.WriteString(renderEvaluation(m.eval))
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	case phaseDone:
		if m.lastErr != nil {
			b.WriteString(errorStyle.Render("Error: "+m.lastErr.Error()) + "\n")
		} else {
			b.WriteString("Interview finished.\n")
		}
	}
	return b.String()
}

// Err reports the error that terminated the loop, if any.
func (m Model) Err() error { return m.lastErr }

func renderEvaluation(e *domain.Evaluation) string {
	var b strings.Builder
	b.WriteString(scoreStyle.Render(fmt.Sprintf(
		"correctness %.1f  completeness %.1f  clarity %.1f  overall %.1f",
		e.CorrectnessScore, e.CompletenessScore, e.ClarityScore, e.OverallScore,
	)))
	b.WriteString("\n\n" + e.Feedback + "\n")
	if len(e.Strengths) > 0 {
		b.WriteString("\nStrengths:\n")
		for _, s := range e.Strengths {
			b.WriteString("  + " + s + "\n")
		}
	}
	if len(e.Improvements) > 0 {
		b.WriteString("\nImprovements:\n")
		for _, s := range e.Improvements {
			b.WriteString("  - " + s + "\n")
		}
	}
	return b.String()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	questionStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
