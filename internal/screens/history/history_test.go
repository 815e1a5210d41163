package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dugout/internal/store"
)

type mockLister struct {
	sessions []store.SessionRecord
	opts     store.QueryOpts
}

func (m *mockLister) ListSessions(_ context.Context, opts store.QueryOpts) ([]store.SessionRecord, error) {
	m.opts = opts
	return m.sessions, nil
}

func record(id, player, outcome string) store.SessionRecord {
	return store.SessionRecord{
		SessionID: id,
		Player:    player,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Position:  "Shortstop",
		GameState: "GameState_2outs_Runner1",
		Conversation: []store.Turn{
			{Index: 0, Question: "Where is the force?"},
			{Index: 1, Answer: "second", Verdict: "correct"},
		},
		Outcome: outcome,
	}
}

func TestHistoryScreen_FiltersByPlayer(t *testing.T) {
	lister := &mockLister{sessions: []store.SessionRecord{
		record("s-1", "alex", "correct"),
		record("s-2", "sam", "strikes_exhausted"),
	}}
	s := New(lister, "alex")
	scr, _ := s.Update(s.Init()())
	hs := scr.(*HistoryScreen)

	if lister.opts.Limit != pageSize {
		t.Errorf("limit = %d, want %d", lister.opts.Limit, pageSize)
	}
	if len(hs.sessions) != 1 || hs.sessions[0].SessionID != "s-1" {
		t.Fatalf("sessions = %+v", hs.sessions)
	}
	if !strings.Contains(hs.View(100, 30), "RUN") {
		t.Error("expected outcome label")
	}
}

func TestHistoryScreen_ExpandShowsConversation(t *testing.T) {
	s := New(&mockLister{sessions: []store.SessionRecord{record("s-1", "alex", "correct")}}, "")
	scr, _ := s.Update(s.Init()())
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	view := scr.View(100, 30)
	if !strings.Contains(view, "Where is the force?") || !strings.Contains(view, "[correct]") {
		t.Error("expected conversation in expanded view")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&mockLister{}, "")
	scr, _ := s.Update(s.Init()())
	if !strings.Contains(scr.View(100, 30), "No plays yet") {
		t.Error("expected empty message")
	}
}
