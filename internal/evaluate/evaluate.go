package evaluate

import "context"

// Verdict classifies a player's answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictPartial   Verdict = "partial"
	VerdictIncorrect Verdict = "incorrect"

	// VerdictUnknown means the classifier gave no recognizable verdict.
	// It never counts as correct and is recorded as its own value.
	VerdictUnknown Verdict = "unknown"
)

// Valid reports whether v is one of the four verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictCorrect, VerdictPartial, VerdictIncorrect, VerdictUnknown:
		return true
	}
	return false
}

// Input is everything an evaluator may look at for one answer.
type Input struct {
	Role               string
	GameState          string
	Answer             string
	RecommendedActions []string
	Explanation        string
	History            []Exchange
	Concepts           []string
}

// Exchange is one earlier question/answer pair in the same session.
type Exchange struct {
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// Result is an evaluator's judgement.
type Result struct {
	Verdict  Verdict
	Feedback string

	// Score is the fuzzy similarity in [0,1]. Zero for semantic results.
	Score float64

	// Degraded holds the primary evaluator's failure when a fallback
	// produced this result. Callers that keep score must not count a
	// degraded non-correct verdict against the player.
	Degraded error
}

// Evaluator classifies a player's answer. Errors are failures of the
// evaluator itself and never stand in for a verdict.
type Evaluator interface {
	Evaluate(ctx context.Context, in Input) (Result, error)
}
