// Package settings implements the settings screen: theme, the mock
// subscription and app info.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/store"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const (
	confirmPrompt = "Confirm subscription for $5.00/month? (Mock Payment)"
	welcomePro    = "Welcome to Pro!"
	price         = "$5.00 / month"
)

// Prefs reads and writes the stored preferences.
type Prefs interface {
	GetTheme(ctx context.Context) (store.Theme, error)
	SetTheme(ctx context.Context, t store.Theme) error
	GetProStatus(ctx context.Context) (bool, error)
	SetProStatus(ctx context.Context, pro bool) error
}

const (
	rowTheme = iota
	rowSubscribe
	rowNotifications
	rowCount
)

// SettingsScreen edits preferences. Store writes are synchronous.
type SettingsScreen struct {
	prefs   Prefs
	version string

	dark       bool
	pro        bool
	selected   int
	confirming bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a settings screen showing the given app version.
func New(prefs Prefs, version string) *SettingsScreen {
	s := &SettingsScreen{prefs: prefs, version: version}
	ctx := context.Background()
	if t, err := prefs.GetTheme(ctx); err == nil {
		s.dark = t == store.ThemeDark
	}
	if pro, err := prefs.GetProStatus(ctx); err == nil {
		s.pro = pro
	}
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "D", Description: "Toggle Dark Mode"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			return s, s.subscribe()
		case "n", "N":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < rowCount-1 {
			s.selected++
		}
	case "d":
		return s, s.toggleTheme()
	case "enter", "space":
		switch s.selected {
		case rowTheme:
			return s, s.toggleTheme()
		case rowSubscribe:
			if !s.pro {
				s.notice = ""
				s.confirming = true
			}
		}
	}
	return s, nil
}

func (s *SettingsScreen) toggleTheme() tea.Cmd {
	current := store.ThemeLight
	if s.dark {
		current = store.ThemeDark
	}
	next := current.Toggle()
	if err := s.prefs.SetTheme(context.Background(), next); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.dark = next == store.ThemeDark
	theme.Apply(themeMode(s.dark))
	return nav.Cmd(nav.ThemeChangedMsg{Dark: s.dark})
}

func (s *SettingsScreen) subscribe() tea.Cmd {
	if err := s.prefs.SetProStatus(context.Background(), true); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.pro = true
	s.notice = welcomePro
	return nav.Cmd(nav.ProChangedMsg{Pro: true})
}

func themeMode(dark bool) theme.Mode {
	if dark {
		return theme.Dark
	}
	return theme.Light
}

func (s *SettingsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string

	// Subscription card.
	var sub strings.Builder
	if s.pro {
		sub.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("★ Pro Plan Active"))
		sub.WriteString("\n")
		sub.WriteString(dim.Render("You have unlimited access."))
	} else {
		sub.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Go Pro"))
		sub.WriteString("\n")
		sub.WriteString(dim.Render("Unlimited scans, No ads, Faster AI."))
		sub.WriteString("\n\n")
		sub.WriteString(theme.Body.Bold(true).Render(price))
		sub.WriteString("\n")
		sub.WriteString(components.ArcadeButton("Subscribe Now", s.selected == rowSubscribe, 20))
	}
	sections = append(sections, components.ArcadeCard(sub.String(), cw))

	// Preferences.
	toggle := "OFF"
	if s.dark {
		toggle = "ON"
	}
	rows := []struct {
		id    int
		label string
	}{
		{rowTheme, fmt.Sprintf("Dark Mode        [%s]", toggle)},
		{rowNotifications, "Notifications    Coming soon"},
	}
	var prefs []string
	for _, row := range rows {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		prefix := "  "
		if row.id == rowNotifications {
			style = style.Foreground(theme.TextDim)
		}
		if row.id == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		prefs = append(prefs, style.Render(prefix+row.label))
	}
	sections = append(sections, components.ArcadeCard(strings.Join(prefs, "\n"), cw))

	if s.confirming {
		sections = append(sections, center.Foreground(theme.Accent).Bold(true).Render(confirmPrompt+"  [y/n]"))
	}
	if s.notice != "" {
		sections = append(sections, center.Foreground(theme.Success).Bold(true).Render(s.notice))
	}
	if s.errMsg != "" {
		sections = append(sections, center.Foreground(theme.Error).Render("Error: "+s.errMsg))
	}

	sections = append(sections, center.Render(
		dim.Render(fmt.Sprintf("SmartStudy AI v%s", strings.TrimPrefix(s.version, "v"))+"\n"+"Built with Gemini API")))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
