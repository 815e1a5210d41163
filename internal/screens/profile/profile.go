package profile

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/router"
	"github.com/abhisek/dugout/internal/screen"
	"github.com/abhisek/dugout/internal/store"
	"github.com/abhisek/dugout/internal/ui/layout"
	"github.com/abhisek/dugout/internal/ui/theme"
)

// Reader loads a player profile.
type Reader interface {
	GetPlayer(ctx context.Context, name string) (*store.PlayerProfile, error)
}

// recentPlays is how many history entries the card shows.
const recentPlays = 8

type profileLoadedMsg struct {
	Profile *store.PlayerProfile
	Err     error
}

// ProfileScreen shows a player's baseball card.
type ProfileScreen struct {
	reader  Reader
	name    string
	profile *store.PlayerProfile
	loaded  bool
	missing bool
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen for name.
func New(reader Reader, name string) *ProfileScreen {
	return &ProfileScreen{reader: reader, name: name}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return func() tea.Msg {
		p, err := s.reader.GetPlayer(context.Background(), s.name)
		return profileLoadedMsg{Profile: p, Err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "Player Card"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		switch {
		case errors.Is(msg.Err, store.ErrNotFound):
			s.missing = true
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.profile = msg.Profile
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading player card...")
	case s.missing:
		return center.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  No record for %s yet. Play a game first!", s.name))
	}

	p := s.profile
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Accent).Bold(true).Render(strings.ToUpper(p.Name)))
	b.WriteString("\n")
	if p.LastActive != nil {
		b.WriteString(center.Foreground(theme.TextDim).Render("Last played " + p.LastActive.Local().Format("Jan 02, 2006")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderConcepts(width, "Mastered", p.MasteredConcepts, theme.Success))
	b.WriteString("\n")
	b.WriteString(renderConcepts(width, "Working on", p.StruggledConcepts, theme.Accent))
	b.WriteString("\n")

	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("Plays seen: %d", len(p.History))))
	b.WriteString("\n")
	start := max(len(p.History)-recentPlays, 0)
	for i := len(p.History) - 1; i >= start; i-- {
		h := p.History[i]
		line := fmt.Sprintf("%s  %s  %s", h.Timestamp.Local().Format("Jan 02 15:04"), h.Position, h.GameState)
		b.WriteString(center.Foreground(theme.Text).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func renderConcepts(width int, label string, concepts []string, accent color.Color) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	body := "none yet"
	if len(concepts) > 0 {
		body = strings.Join(concepts, ", ")
	}
	return center.Foreground(accent).Bold(true).Render(label) + "\n" +
		center.Foreground(theme.Text).Render(body)
}
