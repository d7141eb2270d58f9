package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
)

// Status is the live state the home screen summarises.
type Status struct {
	Pro          bool
	AIConfigured bool
	HistoryCount int
}

// StatusFunc reports the current status. It is called on focus.
type StatusFunc func() Status

// HomeScreen is the main menu.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	status     StatusFunc
	current    Status
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Focuser = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

const (
	itemScan = iota
	itemType
	itemVoice
	itemHistory
	itemTutor
	itemSettings
	itemQuit
)

// New creates a new HomeScreen.
func New(status StatusFunc) *HomeScreen {
	if status == nil {
		status = func() Status { return Status{} }
	}

	menuLabels := []string{"SCAN HOMEWORK", "TYPE", "VOICE", "HISTORY", "AI TUTOR", "SETTINGS", "QUIT"}
	actions := map[int]tea.Cmd{
		itemScan:     nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeCamera}),
		itemType:     nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeType}),
		itemVoice:    nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeVoice}),
		itemHistory:  nav.Cmd(nav.OpenHistoryMsg{}),
		itemTutor:    nav.Cmd(nav.OpenTutorMsg{}),
		itemSettings: nav.Cmd(nav.OpenSettingsMsg{}),
		itemQuit:     tea.Quit,
	}

	items := make([]components.MenuItem, len(menuLabels))
	for i, label := range menuLabels {
		cmd := actions[i]
		items[i] = components.MenuItem{Label: label, Action: func() tea.Cmd { return cmd }}
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		status:     status,
		current:    status(),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Focus refreshes the status when the home screen is shown again.
func (h *HomeScreen) Focus() tea.Cmd {
	h.current = h.status()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "c":
			return h, nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeCamera})
		case "t":
			return h, nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeType})
		case "v":
			return h, nav.Cmd(nav.OpenInputMsg{Mode: nav.ModeVoice})
		case "p":
			if !h.current.Pro {
				return h, nav.Cmd(nav.OpenSettingsMsg{})
			}
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "C/T/V", Description: "Scan/Type/Voice"},
	}
	if !h.current.Pro {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Go Pro"})
	}
	return append(hints, layout.KeyHint{Key: "Q", Description: "Quit"})
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 34 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.current.Pro, cw))
	}
	sections = append(sections, renderTagline(cw))

	if !h.current.AIConfigured {
		sections = append(sections, renderLLMBanner(cw))
	}

	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	sections = append(sections, renderFooterLine(h.current, cw))

	content := strings.Join(sections, "\n\n")
	return renderCabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
