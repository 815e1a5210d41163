package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dugout.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.DB().QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, len(migrations), version)
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := range 5 {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		if i > 0 && n != prev+1 {
			t.Fatalf("sequence %d followed %d", n, prev)
		}
		prev = n
	}
}

func TestEventLog_AppendQueryAndUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "question-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true, RequestBody: "req"},
		{Provider: "mock", Model: "m1", Purpose: "answer-eval", InputTokens: 20, OutputTokens: 8, LatencyMs: 300, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "answer-eval", InputTokens: 30, OutputTokens: 2, LatencyMs: 100, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "boom", all[0].ErrorMessage, "newest first")
	assert.False(t, all[0].Success)

	evals, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "answer-eval", Limit: 1})
	require.NoError(t, err)
	require.Len(t, evals, 1)
	assert.Equal(t, "m2", evals[0].Model)

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "req", got.RequestBody)
	assert.True(t, got.Success)

	_, err = repo.GetLLMEvent(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "answer-eval", Calls: 2, InputTokens: 50, OutputTokens: 10, AvgLatencyMs: 200}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ModelUsage{
		{Model: "m1", Calls: 2, InputTokens: 30, OutputTokens: 13},
		{Model: "m2", Calls: 1, InputTokens: 30, OutputTokens: 2},
	}, byModel)
}

func sampleRecord(id string) SessionRecord {
	return SessionRecord{
		SessionID:          id,
		Player:             "alex",
		Timestamp:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Position:           "Shortstop",
		GameState:          "GameState_2outs_Runner1",
		RecommendedActions: []string{"Throw to 2nd"},
		Conversation: []Turn{
			{Index: 0, Question: "What now?"},
			{Index: 1, Answer: "throw to 2nd", Feedback: "Nice!", Verdict: "correct"},
		},
		Concepts: []string{"Force Out"},
		Outcome:  "correct",
	}
}

func TestSessionLog_AppendOncePerSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	rec := sampleRecord("s-1")
	require.NoError(t, repo.AppendSession(ctx, rec))
	require.NoError(t, repo.AppendSession(ctx, rec))

	got, err := repo.ListSessions(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	got[0].Sequence = 0
	assert.Equal(t, rec, got[0])
}

func TestPlayers_GetUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.PlayerRepo().Get(context.Background(), "nobody")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestPlayers_LogConcepts(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlayerRepo()
	ctx := context.Background()

	p, err := repo.LogConcepts(ctx, "alex", "Shortstop", "gs1", []string{"Force Out", "Tag Up"}, ConceptsStruggled)
	require.NoError(t, err)
	assert.Equal(t, []string{"Force Out", "Tag Up"}, p.StruggledConcepts)
	assert.Empty(t, p.MasteredConcepts)
	require.NotNil(t, p.LastActive)

	p, err = repo.LogConcepts(ctx, "alex", "Shortstop", "gs2", []string{"Force Out"}, ConceptsMastered)
	require.NoError(t, err)
	assert.Equal(t, []string{"Force Out"}, p.MasteredConcepts)
	assert.Equal(t, []string{"Tag Up"}, p.StruggledConcepts)

	p, err = repo.LogConcepts(ctx, "alex", "Catcher", "gs3", []string{"Force Out"}, ConceptsMastered)
	require.NoError(t, err)
	assert.Equal(t, []string{"Force Out"}, p.MasteredConcepts, "concepts stay unique")

	require.Len(t, p.History, 3)
	assert.Equal(t, "gs1", p.History[0].GameState)
	assert.Equal(t, "Catcher", p.History[2].Position)

	got, err := repo.Get(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestPlayers_LogConceptsRequiresName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.PlayerRepo().LogConcepts(context.Background(), "", "p", "g", nil, ConceptsMastered)
	assert.Error(t, err)
}

func TestDailyLog_ConcurrentAppendsStayWhole(t *testing.T) {
	dir := t.TempDir()
	l, err := NewDailyLog(dir)
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return fixed }

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.AppendSession(context.Background(), sampleRecord(fmt.Sprintf("s-%d", i))))
		}()
	}
	wg.Wait()

	path := l.Path(fixed)
	assert.Equal(t, "20260301.jsonl", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	seen := make(map[string]bool)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec SessionRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "line %q", sc.Text())
		seen[rec.SessionID] = true
	}
	require.NoError(t, sc.Err())
	assert.Len(t, seen, n)
}

type failingRepo struct {
	calls    int
	failures int // -1 fails forever
}

func (f *failingRepo) AppendSession(context.Context, SessionRecord) error {
	f.calls++
	if f.failures == 0 {
		return nil
	}
	if f.failures > 0 {
		f.failures--
	}
	return errors.New("disk full")
}

func TestTee_AttemptsEveryRepo(t *testing.T) {
	s := openTestStore(t)
	bad := &failingRepo{failures: -1}
	tee := NewTee(bad, s.SessionRepo())

	err := tee.AppendSession(context.Background(), sampleRecord("s-tee"))
	require.Error(t, err)
	assert.Equal(t, 1, bad.calls)

	got, err := s.SessionRepo().ListSessions(context.Background(), QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTee_RetryOnlyReachesFailedRepos(t *testing.T) {
	dir := t.TempDir()
	daily, err := NewDailyLog(dir)
	require.NoError(t, err)
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	daily.now = func() time.Time { return fixed }

	flaky := &failingRepo{failures: 1}
	tee := NewTee(flaky, daily)
	ctx := context.Background()
	rec := sampleRecord("s-retry")

	require.Error(t, tee.AppendSession(ctx, rec))
	require.NoError(t, tee.AppendSession(ctx, rec))
	assert.Equal(t, 2, flaky.calls)

	data, err := os.ReadFile(daily.Path(fixed))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"), "daily log written once")
	assert.Empty(t, tee.pending)
}
