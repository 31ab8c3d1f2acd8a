// Package memory provides in-memory session storage for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]domain.Session
	questions map[string]domain.Question
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]domain.Session),
		questions: make(map[string]domain.Question),
	}
}

// SaveSession stores or updates a session.
func (s *SessionStore) SaveSession(_ context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	s.sessions[session.ID] = *session
	return nil
}

// GetSession retrieves a session by ID.
func (s *SessionStore) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *SessionStore) ListSessions(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

// SaveQuestion stores or updates a question.
func (s *SessionStore) SaveQuestion(_ context.Context, question *domain.Question) error {
	if question == nil || question.ID == "" || question.SessionID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[question.ID] = *question
	return nil
}

// GetQuestion retrieves a question by ID.
func (s *SessionStore) GetQuestion(_ context.Context, id string) (*domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	question, ok := s.questions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &question, nil
}

// ListQuestions returns a session's questions ordered by position.
func (s *SessionStore) ListQuestions(_ context.Context, sessionID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var questions []domain.Question
	for _, question := range s.questions {
		if question.SessionID == sessionID {
			questions = append(questions, question)
		}
	}
	sort.Slice(questions, func(i, j int) bool {
		return questions[i].Order < questions[j].Order
	})
	return questions, nil
}
