package evaluate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/abhisek/dugout/internal/llm"
)

// LLMConfig holds configuration for the semantic evaluator.
type LLMConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMConfig returns sensible defaults.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		MaxTokens:   400,
		Temperature: 0.3,
	}
}

// LLMEvaluator asks an LLM to classify the answer and coach the player.
type LLMEvaluator struct {
	provider llm.Provider
	cfg      LLMConfig
}

var _ Evaluator = (*LLMEvaluator)(nil)

// NewLLMEvaluator creates a semantic evaluator.
func NewLLMEvaluator(provider llm.Provider, cfg LLMConfig) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, cfg: cfg}
}

// Evaluate returns the model's feedback and the verdict parsed from it.
// Every failure is an *llm.ExternalServiceError.
func (e *LLMEvaluator) Evaluate(ctx context.Context, in Input) (Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeEvaluation)

	userMsg, err := buildEvaluationMessage(in)
	if err != nil {
		return Result{}, fmt.Errorf("build evaluation prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return Result{}, llm.External(llm.PurposeEvaluation, err)
	}

	feedback := resp.Text()
	if feedback == "" {
		return Result{}, llm.External(llm.PurposeEvaluation, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     errors.New("empty evaluation"),
		})
	}

	return Result{
		Verdict:  ParseVerdict(feedback),
		Feedback: feedback,
	}, nil
}

var verdictPattern = regexp.MustCompile(`(?i)VERDICT:\s*(CORRECT|PARTIAL|INCORRECT)\b`)

// ParseVerdict extracts the last verdict marker in text. Text without a
// marker is VerdictUnknown.
func ParseVerdict(text string) Verdict {
	matches := verdictPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return VerdictUnknown
	}
	return Verdict(strings.ToLower(matches[len(matches)-1][1]))
}

const evaluationSystemPrompt = `You're a smart, friendly youth baseball coach reviewing a player's answer to a coaching question.

Instructions:
- Compare the player's answer to the recommended actions and the explanation of the play.
- Give short, encouraging, age-appropriate feedback. If the answer is not fully right, guide the player with a hint instead of giving the answer away.
- Consider the earlier questions and answers in the conversation.
- End your reply with exactly one line: VERDICT: CORRECT, VERDICT: PARTIAL, or VERDICT: INCORRECT.`

var evaluationUserTemplate = template.Must(template.New("evaluation").Funcs(template.FuncMap{
	"join": func(items []string) string { return strings.Join(items, ", ") },
}).Parse(`The player is a {{.Role}} in the situation: {{.GameState}}.

Recommended actions (in order):
{{join .RecommendedActions}}

Key concepts:
{{join .Concepts}}

Explanation of the play:
{{if .Explanation}}{{.Explanation}}{{else}}No explanation available.{{end}}
{{if .History}}
Conversation so far:
{{range .History}}{{if .Question}}Coach: {{.Question}}
{{end}}{{if .Answer}}Player: {{.Answer}}
{{end}}{{if .Feedback}}Coach: {{.Feedback}}
{{end}}{{end}}{{end}}
Player's answer: {{.Answer}}`))

func buildEvaluationMessage(in Input) (string, error) {
	var buf bytes.Buffer
	if err := evaluationUserTemplate.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
