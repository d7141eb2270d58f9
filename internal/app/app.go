package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/smartstudy/internal/capture"
	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/router"
	"github.com/abhisek/smartstudy/internal/screen"
	historyscreen "github.com/abhisek/smartstudy/internal/screens/history"
	"github.com/abhisek/smartstudy/internal/screens/home"
	"github.com/abhisek/smartstudy/internal/screens/input"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/screens/placeholder"
	"github.com/abhisek/smartstudy/internal/screens/quiz"
	"github.com/abhisek/smartstudy/internal/screens/settings"
	"github.com/abhisek/smartstudy/internal/screens/solution"
	tutorscreen "github.com/abhisek/smartstudy/internal/screens/tutor"
	"github.com/abhisek/smartstudy/internal/screens/welcome"
	"github.com/abhisek/smartstudy/internal/ui/layout"
)

const aiUnavailableMessage = "AI features are unavailable.\n\nSet GEMINI_API_KEY (or another provider key)\nand restart SmartStudy."

// AppModel is the root Bubble Tea model. It owns screen construction:
// screens ask for navigation with nav messages.
type AppModel struct {
	opts   *Options
	router *router.Router
	pro    bool
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts *Options) AppModel {
	m := AppModel{opts: opts}
	m.pro = m.loadPro()
	m.router = router.New(home.New(m.homeStatus))
	return m
}

// withSplash puts the welcome screen in front of home.
func (m AppModel) withSplash() AppModel {
	m.router = router.New(welcome.New(func() screen.Screen {
		return home.New(m.homeStatus)
	}))
	return m
}

func (m AppModel) homeStatus() home.Status {
	st := home.Status{
		Pro:          m.loadPro(),
		AIConfigured: m.opts.AIEnabled(),
	}
	if items, err := m.opts.Store.GetHistory(context.Background()); err == nil {
		st.HistoryCount = len(items)
	}
	return st
}

func (m AppModel) loadPro() bool {
	pro, err := m.opts.Store.GetProStatus(context.Background())
	if err != nil {
		m.opts.Logger.Warn("read pro status", zap.Error(err))
	}
	return pro
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case nav.OpenInputMsg:
		return m, m.router.Push(m.inputScreen(msg.Mode))

	case nav.OpenItemMsg:
		s, ok := m.itemScreen(msg.ID)
		if !ok {
			return m, m.router.PopToRoot()
		}
		if msg.Replace {
			return m, m.router.Replace(s)
		}
		return m, m.router.Push(s)

	case nav.OpenTutorMsg:
		if !m.opts.AIEnabled() {
			return m, m.router.Push(placeholder.New("AI Tutor", aiUnavailableMessage))
		}
		return m, m.router.Push(tutorscreen.New(m.opts.Gateway, msg.Seed))

	case nav.OpenHistoryMsg:
		return m, tea.Batch(
			m.router.PopToRoot(),
			m.router.Push(historyscreen.New(m.opts.Store)),
		)

	case nav.OpenSettingsMsg:
		return m, m.router.Push(settings.New(m.opts.Store, m.opts.Version))

	case nav.ThemeChangedMsg:
		m.opts.Logger.Info("theme changed", zap.Bool("dark", msg.Dark))
		return m, nil

	case nav.ProChangedMsg:
		m.pro = msg.Pro
		m.opts.Logger.Info("subscription changed", zap.Bool("pro", msg.Pro))
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) inputScreen(mode nav.InputMode) screen.Screen {
	if !m.opts.AIEnabled() {
		return placeholder.New("Input", aiUnavailableMessage)
	}
	return input.New(mode, m.opts.Study, capture.NewVoiceSession(m.opts.Recognizer))
}

// itemScreen builds the viewer for a stored item. A missing item is
// reported as false and logged.
func (m AppModel) itemScreen(id string) (screen.Screen, bool) {
	item, err := m.opts.Store.FindItem(context.Background(), id)
	if err != nil {
		m.opts.Logger.Warn("open history item", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	switch v := item.(type) {
	case *history.Quiz:
		return quiz.New(v, m.opts.Study), true
	case *history.Solution:
		return solution.New(v), true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.pro, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts *Options) error {
	p := tea.NewProgram(newAppModel(opts).withSplash())
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		opts.Logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}
