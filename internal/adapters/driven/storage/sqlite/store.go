// Package sqlite provides durable session storage backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/parley-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// Store is a SQLite-backed session store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.parley/data/sessions.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".parley", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sessions.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveSession stores or updates a session.
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, candidate_name, role, status, question_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			candidate_name = excluded.candidate_name,
			role = excluded.role,
			status = excluded.status,
			question_count = excluded.question_count,
			updated_at = excluded.updated_at
	`, session.ID, session.CandidateName, session.Role, string(session.Status),
		session.QuestionCount, session.CreatedAt, session.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, candidate_name, role, status, question_count, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	var session domain.Session
	var status string
	if err := row.Scan(&session.ID, &session.CandidateName, &session.Role, &status,
		&session.QuestionCount, &session.CreatedAt, &session.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	session.Status = domain.SessionStatus(status)

	return &session, nil
}

// ListSessions returns all sessions, newest first.
func (s *Store) ListSessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, candidate_name, role, status, question_count, created_at, updated_at
		FROM sessions ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session //nolint:prealloc // size unknown from query
	for rows.Next() {
		var session domain.Session
		var status string
		if err := rows.Scan(&session.ID, &session.CandidateName, &session.Role, &status,
			&session.QuestionCount, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		session.Status = domain.SessionStatus(status)
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

// SaveQuestion stores or updates a question.
func (s *Store) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil || question.ID == "" || question.SessionID == "" {
		return domain.ErrInvalidInput
	}

	var evaluationJSON sql.NullString
	if question.Evaluation != nil {
		data, err := json.Marshal(question.Evaluation)
		if err != nil {
			return fmt.Errorf("marshalling evaluation: %w", err)
		}
		evaluationJSON = sql.NullString{String: string(data), Valid: true}
	}

	var answeredAt sql.NullTime
	if !question.AnsweredAt.IsZero() {
		answeredAt = sql.NullTime{Time: question.AnsweredAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, session_id, text, position, answer, asked_at, answered_at, response_seconds, evaluation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			position = excluded.position,
			answer = excluded.answer,
			answered_at = excluded.answered_at,
			response_seconds = excluded.response_seconds,
			evaluation = excluded.evaluation
	`, question.ID, question.SessionID, question.Text, question.Order, question.Answer,
		question.AskedAt, answeredAt, question.ResponseSeconds, evaluationJSON)

	if err != nil {
		return fmt.Errorf("saving question: %w", err)
	}
	return nil
}

// GetQuestion retrieves a question by ID.
func (s *Store) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, text, position, answer, asked_at, answered_at, response_seconds, evaluation
		FROM questions WHERE id = ?
	`, id)

	question, err := scanQuestion(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return question, nil
}

// ListQuestions returns a session's questions ordered by position.
func (s *Store) ListQuestions(ctx context.Context, sessionID string) ([]domain.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, text, position, answer, asked_at, answered_at, response_seconds, evaluation
		FROM questions WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question //nolint:prealloc // size unknown from query
	for rows.Next() {
		question, err := scanQuestion(rows.Scan)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating questions: %w", err)
	}

	return questions, nil
}

// scanQuestion scans a question row using the given scan function.
func scanQuestion(scan func(dest ...any) error) (*domain.Question, error) {
	var question domain.Question
	var answeredAt sql.NullTime
	var evaluationJSON sql.NullString

	if err := scan(&question.ID, &question.SessionID, &question.Text, &question.Order,
		&question.Answer, &question.AskedAt, &answeredAt, &question.ResponseSeconds,
		&evaluationJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning question: %w", err)
	}

	if answeredAt.Valid {
		question.AnsweredAt = answeredAt.Time
	}
	if evaluationJSON.Valid && evaluationJSON.String != "" {
		var evaluation domain.Evaluation
		if err := json.Unmarshal([]byte(evaluationJSON.String), &evaluation); err != nil {
			return nil, fmt.Errorf("unmarshalling evaluation: %w", err)
		}
		question.Evaluation = &evaluation
	}

	return &question, nil
}
