package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SessionLog stores resolved sessions in SQLite.
type SessionLog struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ SessionRepo = (*SessionLog)(nil)

// AppendSession inserts one record. Appending the same session id again is
// a no-op, so a partially failed fan-out can be retried.
func (r *SessionLog) AppendSession(ctx context.Context, rec SessionRecord) error {
	actions, err := encodeStrings(rec.RecommendedActions)
	if err != nil {
		return fmt.Errorf("encode actions: %w", err)
	}
	concepts, err := encodeStrings(rec.Concepts)
	if err != nil {
		return fmt.Errorf("encode concepts: %w", err)
	}
	turns := rec.Conversation
	if turns == nil {
		turns = []Turn{}
	}
	convo, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_logs
		(sequence, session_id, player, timestamp, position, game_state,
		 recommended_actions, conversation, concepts, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO NOTHING`,
		seqNum, rec.SessionID, rec.Player, formatTime(rec.Timestamp), rec.Position,
		rec.GameState, actions, string(convo), concepts, rec.Outcome,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", rec.SessionID, err)
	}
	return nil
}

// ListSessions returns resolved sessions newest first.
func (r *SessionLog) ListSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	q := `SELECT sequence, session_id, player, timestamp, position, game_state,
		recommended_actions, conversation, concepts, outcome
		FROM session_logs ORDER BY sequence DESC`
	var args []any
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var ts, actions, convo, concepts string
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.Player, &ts, &rec.Position,
			&rec.GameState, &actions, &convo, &concepts, &rec.Outcome); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if rec.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if rec.RecommendedActions, err = decodeStrings(actions); err != nil {
			return nil, fmt.Errorf("decode actions: %w", err)
		}
		if rec.Concepts, err = decodeStrings(concepts); err != nil {
			return nil, fmt.Errorf("decode concepts: %w", err)
		}
		if err := json.Unmarshal([]byte(convo), &rec.Conversation); err != nil {
			return nil, fmt.Errorf("decode conversation: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
