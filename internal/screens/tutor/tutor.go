// Package tutor implements the AI tutor chat screen.
package tutor

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/screen"
	tsess "github.com/abhisek/smartstudy/internal/tutor"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const thinking = "Thinking..."

// replyMsg carries the tutor's answer to one request.
type replyMsg struct {
	owner *TutorScreen
	gen   int
	reply string
	err   error
}

// TutorScreen is a chat with the tutor. The conversation lives only as
// long as the screen.
type TutorScreen struct {
	session *tsess.Session
	input   components.TextInput
	seed    string

	gen    int
	cancel context.CancelFunc
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.Closer = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)

// New creates a chat screen. A non-empty seed is sent once when the
// screen starts.
func New(chat tsess.Chatter, seed string) *TutorScreen {
	return &TutorScreen{
		session: tsess.NewSession(chat),
		input:   components.NewTextInput("", "Ask a question...", 0),
		seed:    seed,
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.input.Init()}
	if s.seed != "" {
		seed := s.seed
		s.seed = ""
		cmds = append(cmds, s.send(seed))
	}
	return tea.Batch(cmds...)
}

func (s *TutorScreen) Title() string {
	return "AI Tutor"
}

// Close abandons an outstanding reply.
func (s *TutorScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.session.Cancel()
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.owner != s || msg.gen != s.gen || !s.session.Pending() {
			return s, nil
		}
		s.session.Complete(msg.reply, msg.err)
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			cmd := s.send(s.input.Value())
			if cmd != nil {
				s.input.SetValue("")
			}
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// send starts a chat request for text. It returns nil when the text is
// blank or a reply is still outstanding.
func (s *TutorScreen) send(text string) tea.Cmd {
	call, ok := s.session.Begin(text)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	owner, gen := s, s.gen
	return func() tea.Msg {
		reply, err := call(ctx)
		return replyMsg{owner: owner, gen: gen, reply: reply, err: err}
	}
}

func (s *TutorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	bubbleWidth := cw * 3 / 4

	userStyle := lipgloss.NewStyle().
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Padding(0, 1).
		MaxWidth(bubbleWidth)
	tutorStyle := lipgloss.NewStyle().
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var bubbles []string
	for _, m := range s.session.Messages() {
		if m.Role == tsess.RoleUser {
			bubbles = append(bubbles, lipgloss.PlaceHorizontal(cw, lipgloss.Right,
				userStyle.Width(min(bubbleWidth, lipgloss.Width(m.Text)+2)).Render(m.Text)))
			continue
		}
		bubbles = append(bubbles, lipgloss.PlaceHorizontal(cw, lipgloss.Left,
			tutorStyle.Width(min(bubbleWidth, lipgloss.Width(m.Text)+4)).Render(m.Text)))
	}
	if s.session.Pending() {
		bubbles = append(bubbles, theme.Hint.Render(thinking))
	}

	inputBox := components.ArcadeCard(s.input.View(), cw)

	// Keep the latest messages visible above the input.
	avail := height - 4 - lipgloss.Height(inputBox)
	transcript := strings.Join(bubbles, "\n")
	if lines := strings.Split(transcript, "\n"); avail > 0 && len(lines) > avail {
		transcript = strings.Join(lines[len(lines)-avail:], "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, transcript, "", inputBox)
	return components.CabinetFrame(content, width, height)
}
