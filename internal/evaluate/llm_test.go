package evaluate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/dugout/internal/llm"
)

func sampleInput() Input {
	return Input{
		Role:               "Shortstop",
		GameState:          "2 Outs, Runner on 1st",
		Answer:             "throw to second",
		RecommendedActions: []string{"Field Grounder", "Throw to 2nd"},
		Concepts:           []string{"Force Out"},
		History: []Exchange{
			{Question: "Where is the force?"},
			{Answer: "first base", Feedback: "Think about the runner."},
		},
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		text string
		want Verdict
	}{
		{"Great read!\nVERDICT: CORRECT", VerdictCorrect},
		{"Close.\nverdict: partial", VerdictPartial},
		{"Not quite. VERDICT:INCORRECT", VerdictIncorrect},
		{"VERDICT: INCORRECT at first, but then VERDICT: CORRECT", VerdictCorrect},
		{"Nice try, keep going!", VerdictUnknown},
		{"VERDICT: CORRECTISH", VerdictUnknown},
		{"", VerdictUnknown},
	}
	for _, tt := range tests {
		if got := ParseVerdict(tt.text); got != tt.want {
			t.Errorf("ParseVerdict(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestLLMEvaluator_ParsesFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Yes! Getting the lead runner is smart.\nVERDICT: CORRECT"))
	e := NewLLMEvaluator(mock, DefaultLLMConfig())

	res, err := e.Evaluate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Verdict != VerdictCorrect {
		t.Errorf("verdict = %q, want correct", res.Verdict)
	}
	if !strings.HasPrefix(res.Feedback, "Yes! Getting the lead runner") {
		t.Errorf("feedback = %q", res.Feedback)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("evaluation must be free text")
	}
	msg := req.Messages[0].Content
	for _, part := range []string{
		"The player is a Shortstop in the situation: 2 Outs, Runner on 1st.",
		"Field Grounder, Throw to 2nd",
		"Force Out",
		"No explanation available.",
		"Coach: Where is the force?",
		"Player: first base",
		"Player's answer: throw to second",
	} {
		if !strings.Contains(msg, part) {
			t.Errorf("prompt missing %q:\n%s", part, msg)
		}
	}
}

func TestLLMEvaluator_MissingMarkerIsUnknown(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Hmm, tell me more about the runner."))
	e := NewLLMEvaluator(mock, DefaultLLMConfig())

	res, err := e.Evaluate(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if res.Verdict != VerdictUnknown {
		t.Errorf("verdict = %q, want unknown", res.Verdict)
	}
}

func TestLLMEvaluator_FailuresAreExternal(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider down", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}},
		{"timeout", llm.MockResponse{Err: context.DeadlineExceeded}},
		{"empty output", llm.MockText("   ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLLMEvaluator(llm.NewMockProvider(tt.resp), DefaultLLMConfig())
			res, err := e.Evaluate(context.Background(), sampleInput())
			var ext *llm.ExternalServiceError
			if !errors.As(err, &ext) {
				t.Fatalf("expected ExternalServiceError, got %T (%v)", err, err)
			}
			if ext.Service != llm.PurposeEvaluation {
				t.Errorf("service = %q", ext.Service)
			}
			if res.Verdict != "" {
				t.Errorf("failure produced verdict %q", res.Verdict)
			}
		})
	}
}

type stubEvaluator struct {
	res   Result
	err   error
	calls int
}

func (s *stubEvaluator) Evaluate(context.Context, Input) (Result, error) {
	s.calls++
	return s.res, s.err
}

func TestFallbackEvaluator(t *testing.T) {
	external := llm.External(llm.PurposeEvaluation, errors.New("down"))

	t.Run("primary ok", func(t *testing.T) {
		primary := &stubEvaluator{res: Result{Verdict: VerdictCorrect}}
		fallback := &stubEvaluator{}
		f := &FallbackEvaluator{Primary: primary, Fallback: fallback}

		res, err := f.Evaluate(context.Background(), Input{})
		if err != nil || res.Verdict != VerdictCorrect {
			t.Fatalf("got %v, %v", res, err)
		}
		if fallback.calls != 0 {
			t.Fatal("fallback should not run")
		}
	})

	t.Run("external failure falls back", func(t *testing.T) {
		primary := &stubEvaluator{err: external}
		fallback := &stubEvaluator{res: Result{Verdict: VerdictPartial}}
		f := &FallbackEvaluator{Primary: primary, Fallback: fallback}

		res, err := f.Evaluate(context.Background(), Input{})
		if err != nil || res.Verdict != VerdictPartial {
			t.Fatalf("got %v, %v", res, err)
		}
		if !errors.Is(res.Degraded, external) {
			t.Fatalf("Degraded = %v, want %v", res.Degraded, external)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("bad template")
		f := &FallbackEvaluator{Primary: &stubEvaluator{err: boom}, Fallback: &stubEvaluator{}}

		if _, err := f.Evaluate(context.Background(), Input{}); !errors.Is(err, boom) {
			t.Fatalf("got %v, want %v", err, boom)
		}
	})

	t.Run("no fallback", func(t *testing.T) {
		f := &FallbackEvaluator{Primary: &stubEvaluator{err: external}}
		if _, err := f.Evaluate(context.Background(), Input{}); err == nil {
			t.Fatal("expected error")
		}
	})
}
