package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dugout/internal/evaluate"
	"github.com/abhisek/dugout/internal/factgraph"
	"github.com/abhisek/dugout/internal/router"
	"github.com/abhisek/dugout/internal/screens/home"
	"github.com/abhisek/dugout/internal/service"
)

func newTestModel() AppModel {
	svc := service.New(service.Options{
		Facts:     factgraph.Seed(),
		Evaluator: evaluate.FuzzyEvaluator{},
	})
	return newAppModel(Options{Service: svc, Player: "alex"})
}

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel)
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected QuitMsg, got %T", cmd())
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the bottom screen should do nothing")
	}
}

func TestAppModel_WelcomeReplacedByHome(t *testing.T) {
	m := sized(newTestModel())

	next, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	m = next.(AppModel)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	m.Update(msg)

	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Fatalf("active = %T, want *home.HomeScreen", m.router.Active())
	}
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}

	view := m.View()
	if !strings.Contains(view.Content, "alex") {
		t.Error("header should name the player")
	}
}

func TestAppModel_EmptyViewBeforeSize(t *testing.T) {
	m := newTestModel()
	if got := m.View().Content; got != "" {
		t.Errorf("expected empty content before a size message, got %q", got)
	}
}

func TestRun_RequiresService(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected error without a service")
	}
}
