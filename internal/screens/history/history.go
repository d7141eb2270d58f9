package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	hist "github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/ui/layout"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

// Loader reads the stored history, most recent first.
type Loader interface {
	GetHistory(ctx context.Context) ([]hist.Item, error)
}

type historyLoadedMsg struct {
	owner *HistoryScreen
	items []hist.Item
	err   error
}

// HistoryScreen lists past solutions and quizzes.
type HistoryScreen struct {
	loader   Loader
	items    []hist.Item
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.Focuser = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(loader Loader) *HistoryScreen {
	return &HistoryScreen{loader: loader}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

// Focus reloads the list, since a viewer opened from here may have
// changed an item.
func (s *HistoryScreen) Focus() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	loader, owner := s.loader, s
	return func() tea.Msg {
		items, err := loader.GetHistory(context.Background())
		return historyLoadedMsg{owner: owner, items: items, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.loaded && len(s.items) == 0 {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Ask a question"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.owner != s {
			return s, nil
		}
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		} else {
			s.errMsg = ""
			s.items = msg.items
			if s.selected >= len(s.items) {
				s.selected = max(len(s.items)-1, 0)
			}
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.items)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			if !s.loaded || s.errMsg != "" {
				return s, nil
			}
			if len(s.items) == 0 {
				return s, nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeType})
			}
			return s, nav.Cmd(nav.OpenItemMsg{ID: s.items[s.selected].ItemID()})
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No activity yet.\n\n  Press Enter to ask a question")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render("Recent Activity")))
	b.WriteString("\n\n")

	// Keep the selection visible on short terminals.
	visible := max(height-4, 1)
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(start+visible, len(s.items))

	for i := start; i < end; i++ {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+entryLine(s.items[i]))))
		b.WriteString("\n")
	}

	return b.String()
}

// entryLine renders one history row: icon, label, date and, for
// completed quizzes, the score.
func entryLine(it hist.Item) string {
	date := it.Created().Format("Jan 02, 2006")

	switch v := it.(type) {
	case *hist.Solution:
		return fmt.Sprintf("✎  %-40s  %s", truncate(v.Question, 40), date)
	case *hist.Quiz:
		line := fmt.Sprintf("☑  %-40s  %s", truncate(v.Title, 40), date)
		if v.Completed && v.Score != nil {
			line += fmt.Sprintf("  Score: %d/%d", *v.Score, len(v.Questions))
		}
		return line
	}
	return it.ItemTitle()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
