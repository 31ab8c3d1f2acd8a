package driven

// Prompt names for the PromptStore. Each maps to a user-editable file.
const (
	// PromptQuestionSystem is the system instruction for question
	// generation.
	PromptQuestionSystem = "question_system"

	// PromptQuestion is the user prompt template for question
	// generation.
	PromptQuestion = "question"

	// PromptEvaluateSystem is the system instruction for answer
	// evaluation, including the JSON schema the model must follow.
	PromptEvaluateSystem = "evaluate_system"

	// PromptEvaluate is the user prompt template for answer evaluation.
	PromptEvaluate = "evaluate"
)

// PromptStore loads prompt templates by name.
// Implementations fall back to embedded defaults when a template is
// missing or unreadable.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access.
	Reload()
}
