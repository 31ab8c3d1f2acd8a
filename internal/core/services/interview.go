package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/parley-cli/internal/core/domain"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driven"
	"github.com/custodia-labs/parley-cli/internal/core/ports/driving"
	"github.com/custodia-labs/parley-cli/internal/jsonextract"
)

// Ensure InterviewService implements the interface.
var _ driving.InterviewService = (*InterviewService)(nil)

// Generation parameters. Question generation runs warm for variety;
// evaluation runs cool for consistent scoring.
const (
	questionTemperature = 0.8
	evaluateTemperature = 0.3

	// DefaultQuestionCount is the question budget for new sessions.
	DefaultQuestionCount = 8

	// DefaultMaxChunks is the retrieval depth for reference context.
	DefaultMaxChunks = 3

	// Fixed retrieval queries used by the orchestrator.
	resumeQuery    = "candidate skills and experience"
	referenceQuery = "interview topics and questions"

	resumeChunks = 2

	healthTimeout = 5 * time.Second
)

// InterviewConfig holds orchestration settings.
type InterviewConfig struct {
	// QuestionCount is the budget for sessions created without an
	// explicit count (default: 8).
	QuestionCount int

	// MaxChunks is the retrieval depth for reference context
	// (default: 3).
	MaxChunks int
}

// InterviewService orchestrates sessions, question generation and
// answer evaluation.
type InterviewService struct {
	sessions      driven.SessionStore
	retriever     *Retriever
	embedder      driven.EmbeddingService
	llm           driven.LLMService
	prompts       driven.PromptStore
	logger        *zap.Logger
	questionCount int
	maxChunks     int
}

// NewInterviewService creates a new interview service.
func NewInterviewService(
	cfg InterviewConfig,
	sessions driven.SessionStore,
	retriever *Retriever,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	prompts driven.PromptStore,
	logger *zap.Logger,
) *InterviewService {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultQuestionCount
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = DefaultMaxChunks
	}

	return &InterviewService{
		sessions:      sessions,
		retriever:     retriever,
		embedder:      embedder,
		llm:           llm,
		prompts:       prompts,
		logger:        logger,
		questionCount: cfg.QuestionCount,
		maxChunks:     cfg.MaxChunks,
	}
}

// CreateSession creates a new interview session.
func (s *InterviewService) CreateSession(ctx context.Context, candidateName, role string, questionCount int) (*domain.Session, error) {
	if questionCount <= 0 {
		questionCount = s.questionCount
	}

	session := &domain.Session{
		ID:            uuid.New().String(),
		CandidateName: candidateName,
		Role:          role,
		Status:        domain.SessionCreated,
		QuestionCount: questionCount,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("question_count", questionCount),
	)
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *InterviewService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetSession(ctx, id)
}

// ListSessions returns all sessions, newest first.
func (s *InterviewService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.ListSessions(ctx)
}

// Questions returns a session's questions in asking order.
func (s *InterviewService) Questions(ctx context.Context, sessionID string) ([]domain.Question, error) {
	return s.sessions.ListQuestions(ctx, sessionID)
}

// NextQuestion generates and persists the next question for a session.
// Retrieval failures degrade to sentinel context strings so the
// interview keeps moving.
func (s *InterviewService) NextQuestion(ctx context.Context, sessionID string) (*domain.Question, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	asked, err := s.sessions.ListQuestions(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(asked) >= session.QuestionCount {
		return nil, fmt.Errorf("%w: all %d questions already asked", domain.ErrInvalidInput, session.QuestionCount)
	}

	resumeContext := s.fetchOrDegrade(ctx,
		domain.CollectionName(domain.PurposeResume, sessionID), resumeQuery, resumeChunks)
	referenceContext := s.fetchOrDegrade(ctx,
		domain.CollectionName(domain.PurposeReference, sessionID), referenceQuery, s.maxChunks)

	systemPrompt, err := s.prompts.Load(driven.PromptQuestionSystem)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}
	template, err := s.prompts.Load(driven.PromptQuestion)
	if err != nil {
		return nil, fmt.Errorf("load question prompt: %w", err)
	}

	order := len(asked) + 1
	prompt := fmt.Sprintf(template,
		order, session.QuestionCount,
		resumeContext, referenceContext,
		previousQuestionList(asked))

	text, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      systemPrompt,
		Temperature: questionTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	question := &domain.Question{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Text:      strings.TrimSpace(text),
		Order:     order,
		AskedAt:   time.Now().UTC(),
	}
	if err := s.sessions.SaveQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("save question: %w", err)
	}

	if session.Status == domain.SessionCreated {
		session.Status = domain.SessionInProgress
		if err := s.sessions.SaveSession(ctx, session); err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
	}

	s.logger.Info("question generated",
		zap.String("session_id", sessionID),
		zap.Int("order", order),
	)
	return question, nil
}

// EvaluateAnswer evaluates an answer against reference context and
// persists it with the question. Malformed model output yields the
// default neutral evaluation, never an error.
func (s *InterviewService) EvaluateAnswer(ctx context.Context, questionID, answer string) (*domain.Evaluation, error) {
	question, err := s.sessions.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}

	referenceContext := s.fetchOrDegrade(ctx,
		domain.CollectionName(domain.PurposeReference, question.SessionID),
		question.Text, s.maxChunks)

	systemPrompt, err := s.prompts.Load(driven.PromptEvaluateSystem)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}
	template, err := s.prompts.Load(driven.PromptEvaluate)
	if err != nil {
		return nil, fmt.Errorf("load evaluate prompt: %w", err)
	}

	prompt := fmt.Sprintf(template, question.Text, answer, referenceContext)

	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      systemPrompt,
		Temperature: evaluateTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate evaluation: %w", err)
	}

	evaluation := s.parseEvaluation(response)

	now := time.Now().UTC()
	question.Answer = answer
	question.AnsweredAt = now
	question.ResponseSeconds = now.Sub(question.AskedAt).Seconds()
	question.Evaluation = evaluation
	if err := s.sessions.SaveQuestion(ctx, question); err != nil {
		return nil, fmt.Errorf("save answer: %w", err)
	}

	if err := s.maybeCompleteSession(ctx, question.SessionID); err != nil {
		return nil, err
	}

	s.logger.Info("answer evaluated",
		zap.String("question_id", questionID),
		zap.Float64("overall_score", evaluation.OverallScore),
	)
	return evaluation, nil
}

// Health probes the external model services.
func (s *InterviewService) Health(ctx context.Context) driving.HealthReport {
	report := driving.HealthReport{
		EmbeddingModel: s.embedder.ModelName(),
		LLMModel:       s.llm.ModelName(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := s.embedder.Ping(probeCtx); err != nil {
		s.logger.Warn("embedding service unreachable", zap.Error(err))
	} else {
		report.EmbeddingOK = true
	}

	probeCtx, cancel = context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := s.llm.Ping(probeCtx); err != nil {
		s.logger.Warn("llm service unreachable", zap.Error(err))
	} else {
		report.LLMOK = true
	}

	return report
}

// fetchOrDegrade retrieves context and substitutes the unavailable
// sentinel on failure. Generation proceeds with degraded context rather
// than stalling the interview.
func (s *InterviewService) fetchOrDegrade(ctx context.Context, collection, query string, maxChunks int) string {
	content, err := s.retriever.Fetch(ctx, collection, query, maxChunks)
	if err != nil {
		s.logger.Warn("context retrieval failed",
			zap.String("collection", collection),
			zap.Error(err),
		)
		return domain.ContextUnavailable
	}
	return content
}

// parseEvaluation extracts and decodes the evaluation JSON from a model
// response, falling back to the neutral default when the payload cannot
// be located or decoded.
func (s *InterviewService) parseEvaluation(response string) *domain.Evaluation {
	payload, strategy, err := jsonextract.Extract(response)
	if err != nil {
		s.logger.Warn("no JSON payload in evaluation response", zap.Error(err))
		return domain.DefaultEvaluation()
	}

	var evaluation domain.Evaluation
	if err := json.Unmarshal([]byte(payload), &evaluation); err != nil {
		s.logger.Warn("malformed evaluation JSON",
			zap.String("strategy", strategy),
			zap.Error(err),
		)
		return domain.DefaultEvaluation()
	}

	if evaluation.Strengths == nil {
		evaluation.Strengths = []string{}
	}
	if evaluation.Improvements == nil {
		evaluation.Improvements = []string{}
	}
	return &evaluation
}

// maybeCompleteSession marks a session completed once every question in
// its budget has an answer.
func (s *InterviewService) maybeCompleteSession(ctx context.Context, sessionID string) error {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	questions, err := s.sessions.ListQuestions(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	answered := 0
	for _, question := range questions {
		if !question.AnsweredAt.IsZero() {
			answered++
		}
	}
	if answered < session.QuestionCount || session.Status == domain.SessionCompleted {
		return nil
	}

	session.Status = domain.SessionCompleted
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	s.logger.Info("session completed", zap.String("session_id", sessionID))
	return nil
}

// previousQuestionList renders asked questions as a bulleted list, or
// "None" when the session has no history yet.
func previousQuestionList(asked []domain.Question) string {
	if len(asked) == 0 {
		return "None"
	}
	lines := make([]string, len(asked))
	for i, question := range asked {
		lines[i] = "- " + question.Text
	}
	return strings.Join(lines, "\n")
}
