package placeholder

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartstudy/internal/router"
)

func TestDefaultMessage(t *testing.T) {
	p := New("Input", "")
	if !strings.Contains(p.View(80, 20), "Coming Soon") {
		t.Error("expected default message")
	}
	if p.Title() != "Input" {
		t.Errorf("unexpected title %q", p.Title())
	}
}

func TestEnterGoesBack(t *testing.T) {
	p := New("AI Tutor", "AI features are unavailable.")

	_, cmd := p.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("other keys should do nothing")
	}

	_, cmd = p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestViewShowsMessageAndButton(t *testing.T) {
	view := New("Input", "AI features are unavailable.").View(80, 20)
	if !strings.Contains(view, "AI features are unavailable.") {
		t.Error("expected message in view")
	}
	if !strings.Contains(view, "Back") {
		t.Error("expected back button in view")
	}
}
