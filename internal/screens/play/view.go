package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/game"
	"github.com/abhisek/dugout/internal/ui/components"
	"github.com/abhisek/dugout/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.quitConfirm {
		return renderCentered(width, height,
			theme.Incorrect.Render("Leave this game?"),
			"",
			theme.Body.Render("Plays you already finished stay in your record."),
			"",
			theme.Hint.Render("Y to leave, N to keep playing"))
	}

	switch s.mode {
	case modeLoading:
		return renderCentered(width, height, theme.Hint.Render("Setting up the next play..."))
	case modeGameOver:
		return s.renderGameOver(width, height)
	case modeError:
		return renderCentered(width, height,
			theme.Incorrect.Render(s.errMsg),
			"",
			theme.Hint.Render("R to retry, Esc to leave"))
	}

	var b strings.Builder
	b.WriteString(s.renderScoreboard(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	b.WriteString(s.renderSituation(width))
	b.WriteString("\n")
	b.WriteString(s.renderTranscript(width))
	b.WriteString("\n")

	switch s.mode {
	case modeQuestion:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, "Answer: "+s.input.View()))
	case modeEvaluating:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("Coach is thinking...")))
	case modeFeedback:
		b.WriteString(s.renderFeedback(width))
	}
	return b.String()
}

func (s *PlayScreen) renderScoreboard(width int) string {
	p := s.status.Progress
	strikes := 0
	if s.last != nil {
		strikes = s.last.Strikes
	} else if s.status.Session != nil {
		strikes = s.status.Session.Strikes
	}

	left := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("  Inning %d/%d", min(p.Inning, game.Innings), game.Innings))
	right := strings.Join([]string{
		components.Diamonds("Outs", p.Outs, game.OutsPerInning, lipgloss.NewStyle().Foreground(theme.Error)),
		components.Diamonds("Strikes", strikes, game.MaxStrikes, lipgloss.NewStyle().Foreground(theme.Accent)),
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(fmt.Sprintf("Runs %d", p.Score)),
	}, "   ")

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line + "\n  " + components.InningBar(p.Inning, game.Innings, max(width-8, 4))
}

func (s *PlayScreen) renderSituation(width int) string {
	sess := s.status.Session
	if sess == nil {
		return ""
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("You're playing %s", sess.Scenario.Role)),
		theme.Body.Render(s.describe(sess.Scenario.GameState)),
	}
	if sess.Context.Play != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Clay).Bold(true).
			Render("The play: "+sess.Context.Play))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (s *PlayScreen) renderTranscript(width int) string {
	textWidth := min(width-8, 70)
	style := lipgloss.NewStyle().Width(textWidth)

	var lines []string
	for _, t := range s.turns {
		if t.Question != "" {
			lines = append(lines, style.Foreground(theme.Text).Bold(true).Render("Coach: "+t.Question))
		}
		if t.Answer != "" {
			lines = append(lines, style.Foreground(theme.TextDim).Render("You: "+t.Answer))
		}
		if t.Feedback != "" {
			lines = append(lines, verdictStyle(t.Verdict).Width(textWidth).Render(t.Feedback))
		}
		lines = append(lines, "")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (s *PlayScreen) renderFeedback(width int) string {
	res := s.last
	if res == nil {
		return ""
	}

	var lines []string
	switch {
	case res.Outcome == game.OutcomeCorrect:
		lines = append(lines, theme.Correct.Render("Safe call! That's a run."))
	case res.Outcome == game.OutcomeStrikesExhausted:
		lines = append(lines, theme.Incorrect.Render("Strike three, that's an out."))
		if res.Explanation != "" {
			lines = append(lines, "", lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(res.Explanation))
		}
	case res.Verdict == evaluate.VerdictPartial:
		lines = append(lines, theme.Partial.Render(fmt.Sprintf("Close! Strike %d.", res.Strikes)))
	default:
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("Strike %d.", res.Strikes)))
	}
	lines = append(lines, "", theme.Hint.Render("press any key to continue"))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (s *PlayScreen) renderGameOver(width, height int) string {
	p := s.status.Progress
	return renderCentered(width, height,
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("BALL GAME!"),
		"",
		theme.Body.Render(fmt.Sprintf("Final: %d runs over %d innings", p.Score, game.Innings)),
		"",
		s.menu.View())
}

func verdictStyle(v evaluate.Verdict) lipgloss.Style {
	switch v {
	case evaluate.VerdictCorrect:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case evaluate.VerdictPartial:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
}

func renderCentered(width, height int, lines ...string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}
