package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"
)

// Players stores player profiles in SQLite.
type Players struct {
	db  *sql.DB
	now func() time.Time
}

var _ PlayerRepo = (*Players)(nil)

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *Players) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// Get loads a player's profile. Unknown names yield ErrNotFound; reads
// never create a profile.
func (r *Players) Get(ctx context.Context, name string) (*PlayerProfile, error) {
	return loadProfile(ctx, r.db, name)
}

func loadProfile(ctx context.Context, q querier, name string) (*PlayerProfile, error) {
	var mastered, struggled, lastActive string
	err := q.QueryRowContext(ctx,
		`SELECT mastered_concepts, struggled_concepts, last_active FROM players WHERE name = ?`, name,
	).Scan(&mastered, &struggled, &lastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load player %q: %w", name, err)
	}

	p := &PlayerProfile{Name: name, History: []HistoryEntry{}}
	if p.MasteredConcepts, err = decodeStrings(mastered); err != nil {
		return nil, fmt.Errorf("decode mastered concepts: %w", err)
	}
	if p.StruggledConcepts, err = decodeStrings(struggled); err != nil {
		return nil, fmt.Errorf("decode struggled concepts: %w", err)
	}
	if lastActive != "" {
		t, err := parseTime(lastActive)
		if err != nil {
			return nil, err
		}
		p.LastActive = &t
	}

	rows, err := q.QueryContext(ctx,
		`SELECT timestamp, game_state, position, concepts FROM player_history
		 WHERE player_name = ? ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("load history for %q: %w", name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h HistoryEntry
		var ts, concepts string
		if err := rows.Scan(&ts, &h.GameState, &h.Position, &concepts); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if h.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if h.Concepts, err = decodeStrings(concepts); err != nil {
			return nil, fmt.Errorf("decode history concepts: %w", err)
		}
		p.History = append(p.History, h)
	}
	return p, rows.Err()
}

// LogConcepts records that name worked through a scenario. Mastering a
// concept removes it from the struggled set; struggling with one leaves the
// mastered set alone.
func (r *Players) LogConcepts(ctx context.Context, name, position, gameState string, concepts []string, outcome ConceptOutcome) (*PlayerProfile, error) {
	if name == "" {
		return nil, fmt.Errorf("player name is required")
	}
	now := r.clock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	p, err := loadProfile(ctx, tx, name)
	if errors.Is(err, ErrNotFound) {
		p = &PlayerProfile{Name: name, MasteredConcepts: []string{}, StruggledConcepts: []string{}}
		if _, err := tx.ExecContext(ctx, `INSERT INTO players (name) VALUES (?)`, name); err != nil {
			return nil, fmt.Errorf("create player %q: %w", name, err)
		}
	} else if err != nil {
		return nil, err
	}

	encoded, err := encodeStrings(concepts)
	if err != nil {
		return nil, fmt.Errorf("encode concepts: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO player_history (player_name, timestamp, game_state, position, concepts) VALUES (?, ?, ?, ?, ?)`,
		name, formatTime(now), gameState, position, encoded,
	); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	switch outcome {
	case ConceptsMastered:
		for _, c := range concepts {
			p.MasteredConcepts = addUnique(p.MasteredConcepts, c)
			p.StruggledConcepts = slices.DeleteFunc(p.StruggledConcepts, func(s string) bool { return s == c })
		}
	case ConceptsStruggled:
		for _, c := range concepts {
			p.StruggledConcepts = addUnique(p.StruggledConcepts, c)
		}
	}

	mastered, err := encodeStrings(p.MasteredConcepts)
	if err != nil {
		return nil, err
	}
	struggled, err := encodeStrings(p.StruggledConcepts)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE players SET mastered_concepts = ?, struggled_concepts = ?, last_active = ? WHERE name = ?`,
		mastered, struggled, formatTime(now), name,
	); err != nil {
		return nil, fmt.Errorf("update player %q: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return r.Get(ctx, name)
}

func addUnique(set []string, v string) []string {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}
