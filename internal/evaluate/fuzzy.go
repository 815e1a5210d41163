package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// CorrectThreshold is the similarity a fuzzy match must exceed.
const CorrectThreshold = 0.8

// PartialThreshold is the similarity at which FuzzyEvaluator reports a
// partial answer.
const PartialThreshold = 0.5

// Candidate is one recommended action with its similarity to the answer.
type Candidate struct {
	Action string  `json:"action"`
	Score  float64 `json:"score"`
}

// Match is the outcome of MatchAnswer.
type Match struct {
	IsCorrect  bool        `json:"is_correct"`
	BestMatch  string      `json:"best_match"`
	Score      float64     `json:"score"`
	AllMatches []Candidate `json:"all_matches"`
}

// MatchAnswer scores answer against every candidate with a
// longest-matching-block ratio. The first candidate wins ties.
func MatchAnswer(answer string, candidates []string) Match {
	normalized := runes(strings.ToLower(strings.TrimSpace(answer)))

	m := Match{AllMatches: make([]Candidate, 0, len(candidates))}
	for i, c := range candidates {
		ratio := difflib.NewMatcher(normalized, runes(strings.ToLower(c))).Ratio()
		m.AllMatches = append(m.AllMatches, Candidate{Action: c, Score: ratio})
		if i == 0 || ratio > m.Score {
			m.BestMatch = c
			m.Score = ratio
		}
	}
	m.IsCorrect = m.Score > CorrectThreshold
	return m
}

// runes splits s into one element per rune, the granularity the ratio
// is computed over.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// FuzzyEvaluator grades answers locally against the recommended actions.
type FuzzyEvaluator struct{}

var _ Evaluator = FuzzyEvaluator{}

func (FuzzyEvaluator) Evaluate(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	m := MatchAnswer(in.Answer, in.RecommendedActions)
	res := Result{Score: m.Score}
	switch {
	case m.IsCorrect:
		res.Verdict = VerdictCorrect
		res.Feedback = fmt.Sprintf("Nice! %s is the right call.", m.BestMatch)
	case m.Score >= PartialThreshold:
		res.Verdict = VerdictPartial
		res.Feedback = "You're close! Can you say exactly what you'd do with the ball?"
	default:
		res.Verdict = VerdictIncorrect
		res.Feedback = "Not quite. Think about where the runners are and how many outs there are."
	}
	return res, nil
}
