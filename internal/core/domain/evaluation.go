package domain

// Evaluation is the structured assessment of a candidate's answer.
// All scores are on a 0-10 scale. An Evaluation always carries all six
// fields: when the model's response cannot be parsed, callers substitute
// DefaultEvaluation rather than propagating the failure.
type Evaluation struct {
	CorrectnessScore  float64  `json:"correctness_score"`
	CompletenessScore float64  `json:"completeness_score"`
	ClarityScore      float64  `json:"clarity_score"`
	OverallScore      float64  `json:"overall_score"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
}

// DefaultFeedback is the neutral feedback used when evaluation parsing
// fails.
const DefaultFeedback = "Unable to evaluate answer properly."

// DefaultEvaluation returns the neutral record used when the model's
// evaluation response cannot be parsed: all scores 5, neutral feedback,
// empty strength and improvement lists.
func DefaultEvaluation() *Evaluation {
	return &Evaluation{
		CorrectnessScore:  5,
		CompletenessScore: 5,
		ClarityScore:      5,
		OverallScore:      5,
		Feedback:          DefaultFeedback,
		Strengths:         []string{},
		Improvements:      []string{},
	}
}
