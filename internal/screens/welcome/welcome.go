package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartstudy/internal/router"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 400 * time.Millisecond
	totalDur     = 1200 * time.Millisecond
)

// Tagline is shown under the banner.
const Tagline = "Your AI Homework Helper"

const bookArt = `   ______ ______
 _/      Y      \_
// ~~ ~~ | ~~ ~  \\
// ~ ~ ~~| ~~~ ~~ \\
//________.|.________\\
'----------'-'----------'`

var sparkleFrames = []string{"✦", "✧"}

type tickMsg time.Time

// WelcomeScreen is the launch splash. Any key replaces it with the
// screen built by next; so does the end of the animation.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		if w.elapsed >= totalDur {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	s := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: s}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)

	if w.elapsed >= bannerAt {
		sparkle := lipgloss.NewStyle().Foreground(theme.Accent).
			Render(sparkleFrames[w.tickCount%len(sparkleFrames)])
		lines := strings.Split(art, "\n")
		lines[0] = sparkle + " " + lines[0] + " " + sparkle
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}
	if w.elapsed >= bannerAt {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(Tagline)
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
