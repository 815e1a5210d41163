package game

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/dugout/internal/factgraph"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	r := NewRegistry(Config{Facts: testFacts(), Evaluator: verdicts()})

	g, st, err := r.Create(context.Background(), "alex")
	require.NoError(t, err)
	assert.Equal(t, "alex", st.Player)
	assert.Equal(t, g.ID(), st.GameID)
	assert.Equal(t, 1, r.Len())

	got, err := r.Get(g.ID())
	require.NoError(t, err)
	assert.Same(t, g, got)

	r.Remove(g.ID())
	_, err = r.Get(g.ID())
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestRegistry_FailedStartNotRegistered(t *testing.T) {
	r := NewRegistry(Config{Facts: factgraph.NewBuilder().Build(), Evaluator: verdicts()})
	_, _, err := r.Create(context.Background(), "alex")
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_ParallelGames(t *testing.T) {
	r := NewRegistry(Config{Facts: testFacts(), Evaluator: &scriptedEvaluator{}})
	ctx := context.Background()

	const n = 10
	ids := make([]string, n)
	for i := range n {
		g, _, err := r.Create(ctx, "")
		require.NoError(t, err)
		ids[i] = g.ID()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := r.Get(id)
			if !assert.NoError(t, err) {
				return
			}
			for turn := 1; turn <= MaxStrikes; turn++ {
				_, err := g.Submit(ctx, turn, "no idea")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		g, err := r.Get(id)
		require.NoError(t, err)
		st := g.Status()
		assert.Equal(t, PhaseResolved, st.Phase)
		assert.Equal(t, 1, st.Progress.Outs)
	}
}

func TestRegistry_UsesInjectedIDs(t *testing.T) {
	n := 0
	r := NewRegistry(Config{
		Facts:     testFacts(),
		Evaluator: verdicts(),
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})

	g, st, err := r.Create(context.Background(), "alex")
	require.NoError(t, err)
	assert.Equal(t, "id-1", g.ID())
	assert.Equal(t, "id-2", st.Session.ID)
}

func TestRegistry_EvictsIdleGames(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	r := NewRegistry(Config{
		Facts:     testFacts(),
		Evaluator: verdicts(),
		Now:       func() time.Time { return now },
	})
	r.SetIdleTimeout(time.Hour)
	ctx := context.Background()

	stale, _, err := r.Create(ctx, "")
	require.NoError(t, err)
	kept, _, err := r.Create(ctx, "")
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	_, err = r.Get(kept.ID())
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	_, _, err = r.Create(ctx, "")
	require.NoError(t, err)

	_, err = r.Get(stale.ID())
	assert.ErrorIs(t, err, ErrUnknownSession)
	_, err = r.Get(kept.ID())
	assert.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}
