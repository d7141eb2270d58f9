package app

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartstudy/internal/config"
	"github.com/abhisek/smartstudy/internal/gateway"
	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/llm"
	"github.com/abhisek/smartstudy/internal/logging"
	"github.com/abhisek/smartstudy/internal/screens/home"
	"github.com/abhisek/smartstudy/internal/screens/input"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/screens/placeholder"
	"github.com/abhisek/smartstudy/internal/screens/quiz"
	"github.com/abhisek/smartstudy/internal/screens/solution"
	"github.com/abhisek/smartstudy/internal/store"
	"github.com/abhisek/smartstudy/internal/study"
	"github.com/abhisek/smartstudy/internal/ui/layout"

	historyscreen "github.com/abhisek/smartstudy/internal/screens/history"
	tutorscreen "github.com/abhisek/smartstudy/internal/screens/tutor"
	"github.com/abhisek/smartstudy/internal/screens/welcome"
)

func newTestOptions(t *testing.T) *Options {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	return &Options{
		Config: &cfg,
		Logger: logging.Nop(),
		Store:  st,
		Study:  study.NewService(offlineGateway{}, st, study.Config{}),
	}
}

func enableMockAI(opts *Options) {
	opts.Gateway = gateway.New(llm.NewMockProvider(), nil)
	opts.Study = study.NewService(opts.Gateway, opts.Store, study.Config{})
}

func send(m AppModel, msg tea.Msg) AppModel {
	updated, _ := m.Update(msg)
	return updated.(AppModel)
}

func saveItem(t *testing.T, opts *Options, item history.Item) {
	t.Helper()
	require.NoError(t, opts.Store.SaveToHistory(context.Background(), item))
}

func TestStartsAtHome(t *testing.T) {
	m := newAppModel(newTestOptions(t))
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestSplashGivesWayToHome(t *testing.T) {
	m := newAppModel(newTestOptions(t)).withSplash()
	require.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
	require.NotNil(t, m.Init())

	_, cmd := m.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	m = send(m, cmd())
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestOpenInputWithoutAIShowsPlaceholder(t *testing.T) {
	m := newAppModel(newTestOptions(t))
	m = send(m, nav.OpenInputMsg{Mode: nav.ModeType})
	assert.IsType(t, &placeholder.PlaceholderScreen{}, m.router.Active())
}

func TestOpenInputWithAI(t *testing.T) {
	opts := newTestOptions(t)
	enableMockAI(opts)
	m := newAppModel(opts)

	m = send(m, nav.OpenInputMsg{Mode: nav.ModeCamera})
	assert.IsType(t, &input.InputScreen{}, m.router.Active())
	assert.Equal(t, "Camera Input", m.router.Active().Title())
}

func TestOpenItemPicksViewer(t *testing.T) {
	opts := newTestOptions(t)
	now := time.Now()
	saveItem(t, opts, history.NewSolution("sol-1", now, "1+1", "2", nil))
	saveItem(t, opts, history.NewQuiz("quiz-1", now, "Math", nil))
	m := newAppModel(opts)

	m = send(m, nav.OpenItemMsg{ID: "sol-1"})
	assert.IsType(t, &solution.SolutionScreen{}, m.router.Active())
	assert.Equal(t, 2, m.router.Depth())

	m = send(m, nav.OpenItemMsg{ID: "quiz-1", Replace: true})
	assert.IsType(t, &quiz.QuizScreen{}, m.router.Active())
	assert.Equal(t, 2, m.router.Depth(), "replace should not grow the stack")
}

func TestOpenMissingItemReturnsHome(t *testing.T) {
	opts := newTestOptions(t)
	m := newAppModel(opts)
	m = send(m, nav.OpenSettingsMsg{})
	require.Equal(t, 2, m.router.Depth())

	m = send(m, nav.OpenItemMsg{ID: "gone"})
	assert.Equal(t, 1, m.router.Depth())
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
}

func TestOpenHistoryResetsStack(t *testing.T) {
	opts := newTestOptions(t)
	saveItem(t, opts, history.NewQuiz("quiz-1", time.Now(), "Math", nil))
	m := newAppModel(opts)

	m = send(m, nav.OpenSettingsMsg{})
	m = send(m, nav.OpenItemMsg{ID: "quiz-1"})
	require.Equal(t, 3, m.router.Depth())

	m = send(m, nav.OpenHistoryMsg{})
	assert.Equal(t, 2, m.router.Depth())
	assert.IsType(t, &historyscreen.HistoryScreen{}, m.router.Active())
}

func TestOpenTutor(t *testing.T) {
	opts := newTestOptions(t)
	m := newAppModel(opts)
	m = send(m, nav.OpenTutorMsg{})
	assert.IsType(t, &placeholder.PlaceholderScreen{}, m.router.Active())

	enableMockAI(opts)
	m = send(m, nav.OpenTutorMsg{Seed: "help"})
	assert.IsType(t, &tutorscreen.TutorScreen{}, m.router.Active())
}

func TestEscPops(t *testing.T) {
	m := newAppModel(newTestOptions(t))
	m = send(m, nav.OpenSettingsMsg{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m = send(m, cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestProStatusTracked(t *testing.T) {
	opts := newTestOptions(t)
	require.NoError(t, opts.Store.SetProStatus(context.Background(), true))

	m := newAppModel(opts)
	assert.True(t, m.pro, "stored status should be read at start")

	m = send(m, nav.ProChangedMsg{Pro: false})
	assert.False(t, m.pro)
}

func TestFooterUsesScreenHints(t *testing.T) {
	m := newAppModel(newTestOptions(t))
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = send(m, nav.OpenSettingsMsg{})

	var hints []string
	for _, h := range m.router.Active().(interface{ KeyHints() []layout.KeyHint }).KeyHints() {
		hints = append(hints, h.Description)
	}
	assert.True(t, strings.Contains(strings.Join(hints, ","), "Toggle Dark Mode"))
}

func TestInitAndEnableAI(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Log.File = filepath.Join(dir, "smartstudy.log")
	ctx := context.Background()

	opts, err := Init(ctx, &cfg, filepath.Join(dir, "smartstudy.db"))
	require.NoError(t, err)
	defer opts.Close()

	assert.False(t, opts.AIEnabled())
	_, err = opts.Study.Process(ctx, "1+1", false)
	assert.True(t, errors.Is(err, ErrAIUnavailable))

	cfg.LLM.Provider = "gemini"
	cfg.LLM.Gemini.APIKey = ""
	assert.ErrorIs(t, opts.EnableAI(ctx), ErrAIUnavailable)

	cfg.LLM.Provider = "mock"
	require.NoError(t, opts.EnableAI(ctx))
	assert.True(t, opts.AIEnabled())
	assert.NotNil(t, opts.Recognizer)
}
