package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/decision"
	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/questiongen"
	"github.com/abhisek/dugout/internal/store"
)

// maxScenarioDraws bounds how many scenarios Start draws looking for one
// with a play.
const maxScenarioDraws = 16

// ProfileRecorder folds a resolved session's concepts into a player
// profile. store.PlayerRepo satisfies it.
type ProfileRecorder interface {
	LogConcepts(ctx context.Context, name, position, gameState string, concepts []string, outcome store.ConceptOutcome) (*store.PlayerProfile, error)
}

// Config wires a Game to its collaborators.
type Config struct {
	Facts *factgraph.Store

	// Questions generates the opening question. When nil the first rule
	// question is used.
	Questions questiongen.Generator

	Evaluator evaluate.Evaluator

	// Sessions receives every resolved session exactly once. Optional.
	Sessions store.SessionRepo

	// Profiles records concepts for Player. Optional.
	Profiles ProfileRecorder

	// Player names the profile sessions are recorded against.
	Player string

	// Rand drives scenario selection. Nil uses the global source. A
	// *rand.Rand is not safe for concurrent use, so never share one
	// between games.
	Rand *rand.Rand

	Log   *zap.Logger
	Now   func() time.Time
	NewID func() string
}

// Game is one player's run through up to nine innings. All methods are
// safe for concurrent use; calls are serialized per game.
type Game struct {
	mu       sync.Mutex
	id       string
	cfg      Config
	progress Progress
	session  *Session
}

// New returns a game with no session. Call Start to pose the first
// question.
func New(id string, cfg Config) *Game {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if id == "" {
		id = cfg.NewID()
	}
	return &Game{id: id, cfg: cfg, progress: newProgress()}
}

// ID returns the game id.
func (g *Game) ID() string { return g.id }

// Start poses the first question. Once a session exists Start is a no-op
// that returns the current status.
func (g *Game) Start(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.progress.GameOver {
		return g.status(), ErrGameOver
	}
	if g.session != nil {
		return g.status(), nil
	}

	s, err := g.newSession(ctx)
	if err != nil {
		return g.status(), err
	}
	g.session = s
	return g.status(), nil
}

// Submit evaluates answer as turn. turn must equal the session's NextTurn.
// On any error the game is left unchanged.
func (g *Game) Submit(ctx context.Context, turn int, answer string) (SubmitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.progress.GameOver:
		return SubmitResult{}, ErrGameOver
	case g.session == nil:
		return SubmitResult{}, ErrNoSession
	case g.session.Resolved:
		return SubmitResult{}, ErrSessionResolved
	case turn != g.session.NextTurn():
		return SubmitResult{}, fmt.Errorf("%w: got turn %d, want %d", ErrStaleTurn, turn, g.session.NextTurn())
	}

	s := g.session
	res, err := g.cfg.Evaluator.Evaluate(ctx, evaluate.Input{
		Role:               s.Scenario.Role,
		GameState:          s.Scenario.GameState,
		Answer:             answer,
		RecommendedActions: s.Context.ActionNames(),
		Explanation:        s.Context.Explanation,
		History:            s.history(),
		Concepts:           s.Context.KeyConcepts,
	})
	if err != nil {
		return SubmitResult{}, fmt.Errorf("evaluate answer: %w", err)
	}
	if res.Degraded != nil && res.Verdict != evaluate.VerdictCorrect {
		g.cfg.Log.Warn("fallback verdict not counted",
			zap.String("session", s.ID),
			zap.String("verdict", string(res.Verdict)),
			zap.Error(res.Degraded))
		return SubmitResult{}, fmt.Errorf("evaluate answer: %w", res.Degraded)
	}
	if !res.Verdict.Valid() {
		res.Verdict = evaluate.VerdictUnknown
	}

	s.Turns = append(s.Turns, Turn{
		Index:    turn,
		Answer:   answer,
		Feedback: res.Feedback,
		Verdict:  res.Verdict,
	})
	s.addConcepts(s.Context.KeyConcepts)

	if res.Verdict == evaluate.VerdictCorrect {
		s.Outcome = OutcomeCorrect
		s.Resolved = true
		g.progress.Score++
	} else {
		s.Strikes++
		if s.Strikes >= MaxStrikes {
			s.Outcome = OutcomeStrikesExhausted
			s.Resolved = true
			s.Revealed = true
			g.progress.Outs++
		}
	}

	g.cfg.Log.Debug("answer evaluated",
		zap.String("game", g.id),
		zap.String("session", s.ID),
		zap.Int("turn", turn),
		zap.String("verdict", string(res.Verdict)),
		zap.Int("strikes", s.Strikes))

	if s.Resolved {
		// A failed write is retried by the next Finalize or Advance.
		_ = g.finalize(ctx)
	}

	out := SubmitResult{
		Turn:     turn,
		Verdict:  res.Verdict,
		Feedback: res.Feedback,
		Strikes:  s.Strikes,
		Resolved: s.Resolved,
		Outcome:  s.Outcome,
		Progress: g.progress,
	}
	if s.Revealed {
		out.Explanation = Explanation(s.Context)
	}
	return out, nil
}

// Finalize logs the resolved session if it has not been logged yet and
// records its concepts on the player profile. Repeat calls are no-ops.
func (g *Game) Finalize(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil || !g.session.Resolved {
		return ErrSessionNotResolved
	}
	return g.finalize(ctx)
}

func (g *Game) finalize(ctx context.Context) error {
	s := g.session
	if !s.Logged {
		if g.cfg.Sessions != nil {
			if err := g.cfg.Sessions.AppendSession(ctx, s.record(g.cfg.Player, g.cfg.Now())); err != nil {
				g.cfg.Log.Warn("failed to log session", zap.String("session", s.ID), zap.Error(err))
				return fmt.Errorf("log session: %w", err)
			}
		}
		s.Logged = true
	}

	if !s.profiled && g.cfg.Profiles != nil && g.cfg.Player != "" {
		outcome := store.ConceptsMastered
		if s.Outcome == OutcomeStrikesExhausted {
			outcome = store.ConceptsStruggled
		}
		if _, err := g.cfg.Profiles.LogConcepts(ctx, g.cfg.Player, s.Scenario.Role, s.Scenario.GameState, s.Concepts, outcome); err != nil {
			g.cfg.Log.Warn("failed to record concepts", zap.String("player", g.cfg.Player), zap.Error(err))
			return fmt.Errorf("record concepts: %w", err)
		}
	}
	s.profiled = true
	return nil
}

// Advance moves to the next play once the current session resolved,
// rolling the inning after three outs. The game ends after the ninth.
func (g *Game) Advance(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.progress.GameOver {
		return g.status(), ErrGameOver
	}
	if g.session == nil || !g.session.Resolved {
		return g.status(), ErrSessionNotResolved
	}
	if err := g.finalize(ctx); err != nil {
		g.cfg.Log.Warn("advancing with unfinalized session", zap.String("session", g.session.ID), zap.Error(err))
	}

	next := g.progress
	if next.Outs >= OutsPerInning {
		next.Outs = 0
		next.Inning++
	}
	if next.Inning > Innings {
		next.GameOver = true
		g.progress = next
		g.cfg.Log.Info("game over", zap.String("game", g.id), zap.Int("score", next.Score))
		return g.status(), nil
	}

	s, err := g.newSession(ctx)
	if err != nil {
		return g.status(), err
	}
	g.progress = next
	g.session = s
	return g.status(), nil
}

// Reset starts a new game from the first inning with a fresh session.
func (g *Game) Reset(ctx context.Context) (Status, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	s, err := g.newSession(ctx)
	if err != nil {
		return g.status(), err
	}
	if g.session != nil && g.session.Resolved {
		_ = g.finalize(ctx)
	}
	g.progress = newProgress()
	g.session = s
	return g.status(), nil
}

// Status returns a copy of the game state.
func (g *Game) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status()
}

func (g *Game) status() Status {
	st := Status{
		GameID:   g.id,
		Player:   g.cfg.Player,
		Progress: g.progress,
	}
	if g.session != nil {
		st.Session = g.session.clone()
	}
	switch {
	case g.progress.GameOver:
		st.Phase = PhaseGameOver
	case g.session == nil:
		st.Phase = PhaseAwaitingScenario
	case g.session.Resolved:
		st.Phase = PhaseResolved
	case g.session.Strikes > 0:
		st.Phase = PhaseAwaitingAnswer
	default:
		st.Phase = PhaseQuestionPosed
	}
	return st
}

// newSession draws scenarios until one has a play and asks its question.
func (g *Game) newSession(ctx context.Context) (*Session, error) {
	var (
		sc factgraph.Scenario
		dc decision.Context
	)
	found := false
	for range maxScenarioDraws {
		var err error
		sc, err = g.cfg.Facts.RandomResponsibilityPair(g.cfg.Rand)
		if err != nil {
			return nil, err
		}
		dc = decision.RichContext(g.cfg.Facts, sc.Role, sc.GameState)
		if dc.HasPlay() {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNoQuestion
	}

	q, err := g.question(ctx, dc)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:        g.cfg.NewID(),
		Scenario:  sc,
		Context:   dc,
		Turns:     []Turn{{Index: 0, Question: q}},
		Concepts:  []string{},
		StartedAt: g.cfg.Now(),
	}
	g.cfg.Log.Debug("session started",
		zap.String("game", g.id),
		zap.String("session", s.ID),
		zap.String("position", sc.Role),
		zap.String("game_state", sc.GameState))
	return s, nil
}

func (g *Game) question(ctx context.Context, dc decision.Context) (string, error) {
	if g.cfg.Questions != nil {
		q, err := g.cfg.Questions.Generate(ctx, dc)
		if err != nil {
			return "", fmt.Errorf("generate question: %w", err)
		}
		return q, nil
	}
	qs := decision.RuleQuestions(g.cfg.Facts, dc.Role, dc.GameState)
	if len(qs) == 0 {
		return "", ErrNoQuestion
	}
	return qs[0], nil
}

// Explanation is what the player is shown once strikes run out.
func Explanation(dc decision.Context) string {
	if dc.Explanation != "" {
		return dc.Explanation
	}
	if actions := dc.ActionNames(); len(actions) > 0 {
		return fmt.Sprintf("On %s the best play is: %s.", strings.ToLower(dc.Play), strings.Join(actions, ", then "))
	}
	return ""
}
