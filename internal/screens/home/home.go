package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dugout/internal/router"
	"github.com/abhisek/dugout/internal/screen"
	"github.com/abhisek/dugout/internal/screens/history"
	"github.com/abhisek/dugout/internal/screens/play"
	"github.com/abhisek/dugout/internal/screens/profile"
	"github.com/abhisek/dugout/internal/ui/components"
	"github.com/abhisek/dugout/internal/ui/layout"
)

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Coach    play.Coach
	Players  profile.Reader // optional
	Sessions history.Lister // optional
	Player   string

	// Describe renders a game state for display.
	Describe func(gameState string) string

	// LLMReady reports whether questions and grading use an LLM.
	LLMReady bool

	Log *zap.Logger
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	push := func(f func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := f()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "PLAY BALL", Action: push(func() screen.Screen {
			return play.New(deps.Coach, deps.Player, deps.Describe, deps.Log)
		})},
		{Label: "PLAYER CARD", Disabled: deps.Players == nil || deps.Player == "", Action: push(func() screen.Screen {
			return profile.New(deps.Players, deps.Player)
		})},
		{Label: "RECENT PLAYS", Disabled: deps.Sessions == nil, Action: push(func() screen.Screen {
			return history.New(deps.Sessions, deps.Player)
		})},
		{Label: "LEAVE THE PARK", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{deps: deps, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)

	sections := []string{renderTitle(cw, compact)}
	if h.deps.Player != "" {
		sections = append(sections, renderGreeting(h.deps.Player, cw))
	}
	if !h.deps.LLMReady {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return components.ScoreboardFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
