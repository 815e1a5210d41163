package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DailyLog appends session records as JSON lines to <dir>/YYYYMMDD.jsonl.
// Each record goes out in a single write on an O_APPEND descriptor, so
// lines from concurrent writers never interleave.
type DailyLog struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

var _ SessionRepo = (*DailyLog)(nil)

// NewDailyLog creates the log directory if needed.
func NewDailyLog(dir string) (*DailyLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &DailyLog{dir: dir, now: time.Now}, nil
}

// Path returns the file a record written at t lands in.
func (l *DailyLog) Path(t time.Time) string {
	return filepath.Join(l.dir, t.UTC().Format("20060102")+".jsonl")
}

func (l *DailyLog) AppendSession(_ context.Context, rec SessionRecord) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.Path(l.now()), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open daily log: %w", err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("append daily log: %w", err)
	}
	return f.Close()
}

// Tee fans one session record out to several repositories. Every repo is
// attempted and the errors are joined. A repo that accepted a session is
// skipped when the same session is appended again, so retrying after a
// partial failure only reaches the repos that failed.
type Tee struct {
	repos []SessionRepo

	mu      sync.Mutex
	pending map[string][]bool // session id -> repos already written
}

var _ SessionRepo = (*Tee)(nil)

// NewTee creates a Tee over repos.
func NewTee(repos ...SessionRepo) *Tee {
	return &Tee{repos: repos, pending: make(map[string][]bool)}
}

// Add appends another repository.
func (t *Tee) Add(repo SessionRepo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repos = append(t.repos, repo)
}

func (t *Tee) AppendSession(ctx context.Context, rec SessionRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	done := t.pending[rec.SessionID]
	if len(done) < len(t.repos) {
		done = append(done, make([]bool, len(t.repos)-len(done))...)
	}

	var errs []error
	for i, r := range t.repos {
		if done[i] {
			continue
		}
		if err := r.AppendSession(ctx, rec); err != nil {
			errs = append(errs, err)
			continue
		}
		done[i] = true
	}

	if len(errs) == 0 {
		delete(t.pending, rec.SessionID)
		return nil
	}
	t.pending[rec.SessionID] = done
	return errors.Join(errs...)
}
