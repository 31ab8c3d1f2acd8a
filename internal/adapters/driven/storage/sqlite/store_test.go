package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{
		ID:            "s1",
		CandidateName: "Jordan",
		Role:          "Backend Engineer",
		Status:        domain.SessionCreated,
		QuestionCount: 8,
	}
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.CandidateName != "Jordan" || got.Role != "Backend Engineer" || got.QuestionCount != 8 {
		t.Errorf("GetSession() = %+v", got)
	}
	if got.Status != domain.SessionCreated {
		t.Errorf("status = %s", got.Status)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestSaveSessionUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{ID: "s1", Status: domain.SessionCreated}
	store.SaveSession(ctx, session)

	session.Status = domain.SessionInProgress
	if err := store.SaveSession(ctx, session); err != nil {
		t.Fatalf("SaveSession() update error = %v", err)
	}

	got, _ := store.GetSession(ctx, "s1")
	if got.Status != domain.SessionInProgress {
		t.Errorf("status = %s, want in_progress", got.Status)
	}

	sessions, _ := store.ListSessions(ctx)
	if len(sessions) != 1 {
		t.Errorf("len(sessions) = %d, want 1", len(sessions))
	}
}

func TestGetSessionNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetSession(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetSession() error = %v, want ErrNotFound", err)
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.SaveSession(ctx, &domain.Session{ID: "s1", Status: domain.SessionInProgress})

	question := &domain.Question{
		ID:        "q1",
		SessionID: "s1",
		Text:      "Describe a goroutine leak you debugged.",
		Order:     1,
		AskedAt:   time.Now().UTC(),
	}
	if err := store.SaveQuestion(ctx, question); err != nil {
		t.Fatalf("SaveQuestion() error = %v", err)
	}

	got, err := store.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if got.Evaluation != nil {
		t.Error("Evaluation should be nil before answering")
	}
	if !got.AnsweredAt.IsZero() {
		t.Error("AnsweredAt should be zero before answering")
	}

	// Answer and evaluate.
	question.Answer = "I used pprof to find blocked goroutines."
	question.AnsweredAt = time.Now().UTC()
	question.ResponseSeconds = 42.5
	question.Evaluation = &domain.Evaluation{
		CorrectnessScore:  8,
		CompletenessScore: 7,
		ClarityScore:      9,
		OverallScore:      8,
		Feedback:          "Solid answer.",
		Strengths:         []string{"tooling knowledge"},
		Improvements:      []string{"mention context cancellation"},
	}
	if err := store.SaveQuestion(ctx, question); err != nil {
		t.Fatalf("SaveQuestion() update error = %v", err)
	}

	got, err = store.GetQuestion(ctx, "q1")
	if err != nil {
		t.Fatalf("GetQuestion() error = %v", err)
	}
	if got.Answer == "" || got.AnsweredAt.IsZero() || got.ResponseSeconds != 42.5 {
		t.Errorf("answered question = %+v", got)
	}
	if got.Evaluation == nil || got.Evaluation.OverallScore != 8 || len(got.Evaluation.Strengths) != 1 {
		t.Errorf("evaluation = %+v", got.Evaluation)
	}
}

func TestListQuestionsOrdered(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.SaveSession(ctx, &domain.Session{ID: "s1", Status: domain.SessionInProgress})
	for _, q := range []*domain.Question{
		{ID: "q2", SessionID: "s1", Text: "second", Order: 2, AskedAt: time.Now()},
		{ID: "q1", SessionID: "s1", Text: "first", Order: 1, AskedAt: time.Now()},
	} {
		if err := store.SaveQuestion(ctx, q); err != nil {
			t.Fatalf("SaveQuestion() error = %v", err)
		}
	}

	questions, err := store.ListQuestions(ctx, "s1")
	if err != nil {
		t.Fatalf("ListQuestions() error = %v", err)
	}
	if len(questions) != 2 || questions[0].Order != 1 || questions[1].Order != 2 {
		t.Errorf("ListQuestions() = %+v", questions)
	}
}

func TestSaveQuestionRequiresIDs(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveQuestion(context.Background(), &domain.Question{ID: "q1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("SaveQuestion() error = %v, want ErrInvalidInput", err)
	}
}
