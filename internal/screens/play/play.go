package play

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/game"
	"github.com/abhisek/dugout/internal/router"
	"github.com/abhisek/dugout/internal/screen"
	"github.com/abhisek/dugout/internal/ui/components"
	"github.com/abhisek/dugout/internal/ui/layout"
)

// Coach is the part of the service the play screen drives.
type Coach interface {
	StartGame(ctx context.Context, player string) (game.Status, error)
	SubmitAnswer(ctx context.Context, gameID string, turn int, answer string) (game.SubmitResult, error)
	NextPlay(ctx context.Context, gameID string) (game.Status, error)
	PlayAgain(ctx context.Context, gameID string) (game.Status, error)
	EndGame(gameID string)
}

type mode int

const (
	modeLoading mode = iota
	modeQuestion
	modeEvaluating
	modeFeedback
	modeGameOver
	modeError
)

const answerLimit = 200

// PlayScreen runs one nine-inning game.
type PlayScreen struct {
	coach    Coach
	player   string
	describe func(gameState string) string
	log      *zap.Logger

	mode        mode
	status      game.Status
	turns       []game.Turn
	last        *game.SubmitResult
	input       components.TextInput
	menu        components.Menu
	quitConfirm bool
	errMsg      string
	retry       tea.Cmd
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen. describe renders a game state for display and
// may be nil.
func New(coach Coach, player string, describe func(string) string, log *zap.Logger) *PlayScreen {
	if describe == nil {
		describe = func(gs string) string { return gs }
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &PlayScreen{
		coach:    coach,
		player:   player,
		describe: describe,
		log:      log,
		input:    components.NewTextInput("What do you do with the ball?", answerLimit),
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "PLAY AGAIN", Action: func() tea.Cmd { return s.load(s.playAgain) }},
		{Label: "BACK TO DUGOUT", Action: func() tea.Cmd { return s.leave() }},
	})
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return tea.Batch(s.load(s.start), s.input.Init())
}

func (s *PlayScreen) Title() string {
	return "Play Ball"
}

func (s *PlayScreen) HandlesEscape() bool { return true }

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.quitConfirm:
		return []layout.KeyHint{{Key: "Y", Description: "Leave game"}, {Key: "N", Description: "Keep playing"}}
	case s.mode == modeQuestion:
		return []layout.KeyHint{{Key: "Enter", Description: "Answer"}, {Key: "Esc", Description: "Leave"}}
	case s.mode == modeFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	case s.mode == modeGameOver:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}}
	case s.mode == modeError:
		return []layout.KeyHint{{Key: "R", Description: "Retry"}, {Key: "Esc", Description: "Leave"}}
	}
	return nil
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		return s.handleStatus(msg)
	case submitMsg:
		return s.handleSubmit(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeQuestion && !s.quitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleStatus(msg statusMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, game.ErrGameOver) {
			s.mode = modeGameOver
			return s, nil
		}
		s.fail(msg.Err)
		return s, nil
	}

	s.status = msg.Status
	s.last = nil
	s.retry = nil
	if s.status.Session != nil {
		s.turns = s.status.Session.Turns
	}
	if s.status.Progress.GameOver {
		s.mode = modeGameOver
		return s, nil
	}
	s.mode = modeQuestion
	s.input.Reset()
	return s, nil
}

func (s *PlayScreen) handleSubmit(msg submitMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.fail(msg.Err)
		s.retry = s.submit(msg.Answer)
		return s, nil
	}

	res := msg.Result
	s.turns = append(s.turns, game.Turn{
		Index:    res.Turn,
		Answer:   msg.Answer,
		Feedback: res.Feedback,
		Verdict:  res.Verdict,
	})
	s.status.Progress = res.Progress
	s.last = &res
	s.mode = modeFeedback
	s.input.Reset()
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			return s, s.leave()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.mode {
	case modeQuestion:
		switch key {
		case "esc":
			s.quitConfirm = true
			return s, nil
		case "enter":
			answer := s.input.Value()
			if answer == "" {
				return s, nil
			}
			s.mode = modeEvaluating
			return s, s.submit(answer)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case modeFeedback:
		if s.last != nil && s.last.Resolved {
			return s, s.load(s.next)
		}
		s.mode = modeQuestion
		return s, nil

	case modeGameOver:
		if key == "esc" {
			return s, s.leave()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd

	case modeError:
		switch key {
		case "r", "R":
			if s.retry != nil {
				cmd := s.retry
				s.retry = nil
				s.errMsg = ""
				s.mode = modeEvaluating
				return s, cmd
			}
			s.errMsg = ""
			s.mode = modeQuestion
			return s, nil
		case "esc":
			return s, s.leave()
		}
	}
	return s, nil
}

// fail shows the error without touching game state.
func (s *PlayScreen) fail(err error) {
	s.log.Warn("request failed", zap.String("game", s.status.GameID), zap.Error(err))
	s.errMsg = "Could not complete request. Nothing was counted."
	s.mode = modeError
}

func (s *PlayScreen) leave() tea.Cmd {
	if s.status.GameID != "" {
		s.coach.EndGame(s.status.GameID)
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

// load runs op in the background and remembers it for retry.
func (s *PlayScreen) load(op func(context.Context) (game.Status, error)) tea.Cmd {
	s.mode = modeLoading
	cmd := func() tea.Msg {
		st, err := op(context.Background())
		return statusMsg{Status: st, Err: err}
	}
	s.retry = cmd
	return cmd
}

func (s *PlayScreen) start(ctx context.Context) (game.Status, error) {
	return s.coach.StartGame(ctx, s.player)
}

func (s *PlayScreen) next(ctx context.Context) (game.Status, error) {
	return s.coach.NextPlay(ctx, s.status.GameID)
}

func (s *PlayScreen) playAgain(ctx context.Context) (game.Status, error) {
	return s.coach.PlayAgain(ctx, s.status.GameID)
}

func (s *PlayScreen) submit(answer string) tea.Cmd {
	id, turn := s.status.GameID, len(s.turns)
	return func() tea.Msg {
		res, err := s.coach.SubmitAnswer(context.Background(), id, turn, answer)
		return submitMsg{Answer: answer, Result: res, Err: err}
	}
}
