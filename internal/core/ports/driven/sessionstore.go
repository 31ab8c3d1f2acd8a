package driven

import (
	"context"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

// SessionStore persists interview sessions and their questions.
// Backed by SQLite for durable storage.
type SessionStore interface {
	// SaveSession stores or updates a session.
	SaveSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions, newest first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// SaveQuestion stores or updates a question, including its answer
	// and evaluation once present.
	SaveQuestion(ctx context.Context, question *domain.Question) error

	// GetQuestion retrieves a question by ID.
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)

	// ListQuestions returns a session's questions ordered by their
	// position in the interview.
	ListQuestions(ctx context.Context, sessionID string) ([]domain.Question, error)
}
