package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/router"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

// DefaultMessage is shown when no message is given.
const DefaultMessage = "╌╌ Coming Soon ╌╌\n\nThis feature is being built.\nCheck back later!"

// PlaceholderScreen shows a static message, used for features that are
// unavailable in the current setup. Enter goes back.
type PlaceholderScreen struct {
	title   string
	message string
	back    components.Button
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen with the given title and message.
func New(title, message string) *PlaceholderScreen {
	if message == "" {
		message = DefaultMessage
	}
	return &PlaceholderScreen{
		title:   title,
		message: message,
		back: components.NewButton("Back", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.back, cmd = p.back.Update(msg)
	return p, cmd
}

func (p *PlaceholderScreen) View(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(p.message)
	content := lipgloss.JoinVertical(lipgloss.Center, body, "", p.back.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
