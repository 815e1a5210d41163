package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/llm"
)

// ErrNoPlay is returned for a context without a play.
var ErrNoPlay = errors.New("questiongen: context has no play")

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

var _ Generator = (*LLMGenerator)(nil)

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question string `json:"question"`
}

// Generate produces a single question for the decision context.
func (g *LLMGenerator) Generate(ctx context.Context, dc decision.Context) (string, error) {
	if !dc.HasPlay() {
		return "", ErrNoPlay
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(dc)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", llm.External(llm.PurposeQuestion, err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", llm.External(llm.PurposeQuestion, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("parse question: %w", err),
		})
	}

	q := strings.TrimSpace(raw.Question)
	if err := g.validate(q); err != nil {
		return "", llm.External(llm.PurposeQuestion, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     err,
		})
	}
	return q, nil
}

func (g *LLMGenerator) validate(q string) error {
	switch {
	case q == "":
		return errors.New("empty question")
	case g.config.MaxQuestionLen > 0 && utf8.RuneCountInString(q) > g.config.MaxQuestionLen:
		return fmt.Errorf("question is longer than %d characters", g.config.MaxQuestionLen)
	case !strings.Contains(q, "?"):
		return errors.New("question has no question mark")
	}
	return nil
}
