package game

import (
	"slices"
	"time"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/store"
)

// Rules of the game.
const (
	MaxStrikes    = 3
	OutsPerInning = 3
	Innings       = 9
)

// Phase is where a game sits in the question/answer loop.
type Phase string

const (
	PhaseAwaitingScenario Phase = "awaiting_scenario"
	PhaseQuestionPosed    Phase = "question_posed"
	PhaseAwaitingAnswer   Phase = "awaiting_answer" // after a strike
	PhaseResolved         Phase = "resolved"
	PhaseGameOver         Phase = "game_over"
)

// Outcome is how a session resolved.
type Outcome string

const (
	OutcomeNone             Outcome = ""
	OutcomeCorrect          Outcome = "correct"
	OutcomeStrikesExhausted Outcome = "strikes_exhausted"
)

// Turn is one entry of the session conversation. Turn 0 holds the opening
// question; every later turn holds an answer with its evaluation.
type Turn struct {
	Index    int              `json:"turn"`
	Question string           `json:"question,omitempty"`
	Answer   string           `json:"answer,omitempty"`
	Feedback string           `json:"feedback,omitempty"`
	Verdict  evaluate.Verdict `json:"verdict,omitempty"`
}

// Session is one scenario played until it resolves.
type Session struct {
	ID        string             `json:"id"`
	Scenario  factgraph.Scenario `json:"scenario"`
	Context   decision.Context   `json:"context"`
	Turns     []Turn             `json:"turns"`
	Strikes   int                `json:"strikes"`
	Resolved  bool               `json:"resolved"`
	Outcome   Outcome            `json:"outcome,omitempty"`
	Revealed  bool               `json:"explanation_revealed"`
	Logged    bool               `json:"logged"`
	Concepts  []string           `json:"concepts_seen"`
	StartedAt time.Time          `json:"started_at"`

	profiled bool
}

// NextTurn is the index the next answer must be submitted with.
func (s *Session) NextTurn() int { return len(s.Turns) }

// Question returns the opening question.
func (s *Session) Question() string {
	if len(s.Turns) == 0 {
		return ""
	}
	return s.Turns[0].Question
}

func (s *Session) addConcepts(concepts []string) {
	for _, c := range concepts {
		if !slices.Contains(s.Concepts, c) {
			s.Concepts = append(s.Concepts, c)
		}
	}
}

func (s *Session) history() []evaluate.Exchange {
	out := make([]evaluate.Exchange, len(s.Turns))
	for i, t := range s.Turns {
		out[i] = evaluate.Exchange{Question: t.Question, Answer: t.Answer, Feedback: t.Feedback}
	}
	return out
}

func (s *Session) clone() *Session {
	c := *s
	c.Turns = slices.Clone(s.Turns)
	c.Concepts = slices.Clone(s.Concepts)
	return &c
}

func (s *Session) record(player string, at time.Time) store.SessionRecord {
	turns := make([]store.Turn, len(s.Turns))
	for i, t := range s.Turns {
		turns[i] = store.Turn{
			Index:    t.Index,
			Question: t.Question,
			Answer:   t.Answer,
			Feedback: t.Feedback,
			Verdict:  string(t.Verdict),
		}
	}
	return store.SessionRecord{
		SessionID:          s.ID,
		Player:             player,
		Timestamp:          at,
		Position:           s.Scenario.Role,
		GameState:          s.Scenario.GameState,
		RecommendedActions: s.Context.ActionNames(),
		Conversation:       turns,
		Concepts:           slices.Clone(s.Concepts),
		Outcome:            string(s.Outcome),
	}
}

// Progress is the game-wide scoreboard.
type Progress struct {
	Inning   int  `json:"inning"`
	Outs     int  `json:"outs"`
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
}

func newProgress() Progress { return Progress{Inning: 1} }

// Status is a point-in-time copy of a game.
type Status struct {
	GameID   string   `json:"game_id"`
	Player   string   `json:"player,omitempty"`
	Phase    Phase    `json:"phase"`
	Progress Progress `json:"progress"`
	Session  *Session `json:"session,omitempty"`
}

// SubmitResult describes the effect of one answer.
type SubmitResult struct {
	Turn        int              `json:"turn"`
	Verdict     evaluate.Verdict `json:"verdict"`
	Feedback    string           `json:"feedback"`
	Strikes     int              `json:"strikes"`
	Resolved    bool             `json:"resolved"`
	Outcome     Outcome          `json:"outcome,omitempty"`
	Explanation string           `json:"explanation,omitempty"`
	Progress    Progress         `json:"progress"`
}
