package domain

import "time"

// SessionStatus tracks the lifecycle of an interview session.
type SessionStatus string

// Session statuses.
const (
	SessionCreated    SessionStatus = "created"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// Session represents one interview. The session identifier doubles as
// the namespacing key for the session's vector collections.
type Session struct {
	// ID is the opaque session identifier.
	ID string

	// CandidateName is the interviewee's display name.
	CandidateName string

	// Role is the position being interviewed for.
	Role string

	// Status is the session lifecycle state.
	Status SessionStatus

	// QuestionCount is the total number of questions planned.
	QuestionCount int

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated.
	UpdatedAt time.Time
}

// Question is a generated interview question and, once answered, the
// candidate's answer and its evaluation.
type Question struct {
	// ID is the unique question identifier.
	ID string

	// SessionID links to the owning Session.
	SessionID string

	// Text is the generated question text.
	Text string

	// Order is the 1-based position within the session.
	Order int

	// Answer is the candidate's answer text, empty until answered.
	Answer string

	// AskedAt is when the question was generated.
	AskedAt time.Time

	// AnsweredAt is when the answer was submitted, zero until answered.
	AnsweredAt time.Time

	// ResponseSeconds is the time between asking and answering.
	ResponseSeconds float64

	// Evaluation is the scored evaluation, nil until answered.
	Evaluation *Evaluation
}
