package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures list queries.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// Turn is the persisted form of one question/answer exchange.
type Turn struct {
	Index    int    `json:"turn"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Feedback string `json:"feedback,omitempty"`
	Verdict  string `json:"eval,omitempty"`
}

// SessionRecord is the persisted form of one resolved session.
type SessionRecord struct {
	Sequence           int64     `json:"-"`
	SessionID          string    `json:"session_id"`
	Player             string    `json:"player,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
	Position           string    `json:"position"`
	GameState          string    `json:"game_state"`
	RecommendedActions []string  `json:"recommended_actions"`
	Conversation       []Turn    `json:"conversation"`
	Concepts           []string  `json:"concepts"`
	Outcome            string    `json:"outcome"`
}

// SessionRepo persists resolved sessions. Implementations must make each
// call a single atomic write.
type SessionRepo interface {
	AppendSession(ctx context.Context, rec SessionRecord) error
}

// HistoryEntry records one scenario a player worked through.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	GameState string    `json:"game_state"`
	Position  string    `json:"position"`
	Concepts  []string  `json:"concepts"`
}

// PlayerProfile is a player's accumulated progress.
type PlayerProfile struct {
	Name              string         `json:"name"`
	History           []HistoryEntry `json:"history"`
	MasteredConcepts  []string       `json:"mastered_concepts"`
	StruggledConcepts []string       `json:"struggled_concepts"`
	LastActive        *time.Time     `json:"last_active"`
}

// ConceptOutcome says how a player fared with the concepts being logged.
type ConceptOutcome int

const (
	ConceptsMastered ConceptOutcome = iota
	ConceptsStruggled
)

// PlayerRepo reads and updates player profiles.
type PlayerRepo interface {
	// Get returns ErrNotFound when the player has no record.
	Get(ctx context.Context, name string) (*PlayerProfile, error)

	// LogConcepts appends a history entry and folds concepts into the
	// mastered or struggled set, creating the profile if needed.
	LogConcepts(ctx context.Context, name, position, gameState string, concepts []string, outcome ConceptOutcome) (*PlayerProfile, error)
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func encodeStrings(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeStrings(s string) ([]string, error) {
	out := []string{}
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
