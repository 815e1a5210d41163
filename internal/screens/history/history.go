package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/router"
	"github.com/abhisek/dugout/internal/screen"
	"github.com/abhisek/dugout/internal/store"
	"github.com/abhisek/dugout/internal/ui/layout"
	"github.com/abhisek/dugout/internal/ui/theme"
)

// Lister reads logged sessions, newest first.
type Lister interface {
	ListSessions(ctx context.Context, opts store.QueryOpts) ([]store.SessionRecord, error)
}

const pageSize = 50

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen lists recently logged plays.
type HistoryScreen struct {
	lister   Lister
	player   string
	sessions []store.SessionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen. A non-empty player filters to that player.
func New(lister Lister, player string) *HistoryScreen {
	return &HistoryScreen{
		lister:   lister,
		player:   player,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		all, err := s.lister.ListSessions(context.Background(), store.QueryOpts{Limit: pageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if s.player == "" {
			return historyLoadedMsg{Sessions: all}
		}
		var mine []store.SessionRecord
		for _, rec := range all {
			if rec.Player == s.player {
				mine = append(mine, rec)
			}
		}
		return historyLoadedMsg{Sessions: mine}
	}
}

func (s *HistoryScreen) Title() string {
	return "Recent Plays"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading plays...")
	}
	if len(s.sessions) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  No plays yet. Go play ball!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-14s %-28s %s",
			prefix, rec.Timestamp.Local().Format("Jan 02 15:04"), rec.Position, rec.GameState, outcomeLabel(rec.Outcome))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, turn := range rec.Conversation {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderTurn(turn)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func outcomeLabel(outcome string) string {
	switch outcome {
	case "correct":
		return theme.Correct.Render("RUN")
	case "strikes_exhausted":
		return theme.Incorrect.Render("OUT")
	default:
		return theme.Hint.Render(outcome)
	}
}

func renderTurn(t store.Turn) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Question != "" {
		return dim.Render("    Coach: " + t.Question)
	}
	return dim.Render(fmt.Sprintf("    You: %s  [%s]", t.Answer, t.Verdict))
}
