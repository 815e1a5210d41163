package questiongen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/llm"
)

func shortstopContext() decision.Context {
	return decision.RichContext(factgraph.Seed(), "Shortstop", "GameState_2outs_Runner1")
}

func TestGenerate_ReturnsQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{
		"question": "  With two outs, which base gives you the easiest force out?  ",
	}))
	g := New(mock, DefaultConfig())

	q, err := g.Generate(context.Background(), shortstopContext())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if q != "With two outs, which base gives you the easiest force out?" {
		t.Errorf("question = %q", q)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionSchema {
		t.Error("expected question schema on request")
	}
	if !strings.HasPrefix(req.System, "You're a smart, friendly youth baseball coach.") {
		t.Errorf("system prompt = %q", req.System)
	}
}

func TestBuildUserMessage(t *testing.T) {
	msg := buildUserMessage(shortstopContext())
	want := `The player is a Shortstop in the situation: GameState_2outs_Runner1.
The play is: Grounder to SS.

Recommended actions (in order):
Throw to 2nd

Key concepts:


Explanation of the play:
No explanation available.

Ask one thoughtful, age-appropriate Socratic question to guide the player's decision-making.`
	if msg != want {
		t.Errorf("message mismatch:\ngot:\n%s\n\nwant:\n%s", msg, want)
	}
}

func TestBuildUserMessage_Explanation(t *testing.T) {
	dc := decision.Context{Role: "Catcher", GameState: "gs", Play: "Bunt", Explanation: "Field it and look at first."}
	if msg := buildUserMessage(dc); !strings.Contains(msg, "Explanation of the play:\nField it and look at first.") {
		t.Errorf("explanation missing:\n%s", msg)
	}
}

func TestGenerate_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}}},
		{"not json", llm.MockText("Where do you throw?")},
		{"empty question", llm.MockJSON(map[string]string{"question": " "})},
		{"not a question", llm.MockJSON(map[string]string{"question": "Throw to second."})},
		{"too long", llm.MockJSON(map[string]string{"question": strings.Repeat("a", 401) + "?"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(llm.NewMockProvider(tt.resp), DefaultConfig())
			_, err := g.Generate(context.Background(), shortstopContext())
			var ext *llm.ExternalServiceError
			if !errors.As(err, &ext) {
				t.Fatalf("expected ExternalServiceError, got %T (%v)", err, err)
			}
			if ext.Service != llm.PurposeQuestion {
				t.Errorf("service = %q", ext.Service)
			}
		})
	}
}

func TestGenerate_NoPlay(t *testing.T) {
	mock := llm.NewMockProvider()
	g := New(mock, DefaultConfig())

	_, err := g.Generate(context.Background(), decision.Context{Role: "Pitcher", GameState: "nowhere"})
	if !errors.Is(err, ErrNoPlay) {
		t.Fatalf("got %v, want ErrNoPlay", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("provider should not be called without a play")
	}
}
