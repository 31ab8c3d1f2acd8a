package driving

import (
	"context"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// HealthReport describes the reachability of external model services.
type HealthReport struct {
	// EmbeddingOK is true when the embedding service's liveness probe
	// succeeded within its timeout.
	EmbeddingOK bool

	// EmbeddingModel is the configured embedding model name.
	EmbeddingModel string

	// LLMOK is true when the language model's liveness probe succeeded
	// within its timeout.
	LLMOK bool

	// LLMModel is the configured language model name.
	LLMModel string
}

// InterviewService drives the generation pipeline: session management,
// question generation and answer evaluation.
type InterviewService interface {
	// CreateSession creates a new interview session.
	CreateSession(ctx context.Context, candidateName, role string, questionCount int) (*domain.Session, error)

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// Questions returns a session's questions in asking order.
	Questions(ctx context.Context, sessionID string) ([]domain.Question, error)

	// NextQuestion generates and persists the next question for a
	// session, using resume and reference context plus the previously
	// asked questions. Non-repetition is a soft constraint communicated
	// through the prompt only.
	NextQuestion(ctx context.Context, sessionID string) (*domain.Question, error)

	// EvaluateAnswer evaluates an answer against reference context and
	// persists it with the question. Malformed model output yields the
	// default neutral evaluation, never an error.
	EvaluateAnswer(ctx context.Context, questionID, answer string) (*domain.Evaluation, error)

	// Health probes the external model services.
	Health(ctx context.Context) HealthReport
}
