// Package input implements the capture screen: scan an image, transcribe
// a recording, or type a question, then solve it or turn it into a quiz.
package input

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartstudy/internal/capture"
	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/llm"
	"github.com/abhisek/smartstudy/internal/screen"
	"github.com/abhisek/smartstudy/internal/screens/nav"
	"github.com/abhisek/smartstudy/internal/ui/components"
	"github.com/abhisek/smartstudy/internal/ui/layout"
)

// Status lines shown under the editor.
const (
	StatusScanning      = "Scanning text..."
	StatusAnalyzing     = "Analyzing question..."
	StatusCreatingQuiz  = "Creating quiz..."
	StatusListening     = "Listening... press Enter to stop."
	StatusExtractFailed = "Failed to extract text. Please try again."
	StatusProcessFailed = "Failed to process. Please try again."
	StatusNotImage      = "That file is not a supported image."
	StatusNoText        = "Type or capture a question first."
)

// Service is what the input screen needs from the study service.
type Service interface {
	Scan(ctx context.Context, image llm.Image) (string, error)
	Process(ctx context.Context, text string, forceQuiz bool) (history.Item, error)
}

type focusTarget int

const (
	focusSource focusTarget = iota
	focusText
	focusSolve
	focusQuiz
)

// scanDoneMsg carries OCR output back to the screen that asked for it.
type scanDoneMsg struct {
	owner *InputScreen
	gen   int
	text  string
	err   error
}

// processDoneMsg carries the saved history record.
type processDoneMsg struct {
	owner *InputScreen
	gen   int
	item  history.Item
	err   error
}

// transcriptMsg carries an interim transcript. updates delivers the
// rest of the recording.
type transcriptMsg struct {
	owner   *InputScreen
	gen     int
	text    string
	updates <-chan tea.Msg
}

// voiceDoneMsg carries the final transcript of a recording.
type voiceDoneMsg struct {
	owner *InputScreen
	gen   int
	text  string
	err   error
}

// InputScreen captures a question.
type InputScreen struct {
	mode  nav.InputMode
	svc   Service
	voice *capture.VoiceSession

	source components.TextInput
	text   components.TextInput
	focus  focusTarget

	busy      bool
	status    string
	isError   bool
	extracted bool

	gen    int
	cancel context.CancelFunc
}

var _ screen.Screen = (*InputScreen)(nil)
var _ screen.Closer = (*InputScreen)(nil)
var _ screen.KeyHintProvider = (*InputScreen)(nil)

// New creates an input screen. voice may be nil outside voice mode.
func New(mode nav.InputMode, svc Service, voice *capture.VoiceSession) *InputScreen {
	if voice == nil {
		voice = capture.NewVoiceSession(nil)
	}
	s := &InputScreen{
		mode:  mode,
		svc:   svc,
		voice: voice,
		text:  components.NewTextInput("Your Question", "Type your question here (e.g. 1 + 1, or a list of questions)", 0),
	}

	switch mode {
	case nav.ModeCamera:
		s.source = components.NewTextInput("Image File", "path/to/photo.jpg", 0)
		s.text.Label = "Extracted Text (Editable)"
		s.text.Model.Placeholder = "Waiting for input..."
		s.setFocus(focusSource)
	case nav.ModeVoice:
		s.source = components.NewTextInput("Recording", "path/to/question.wav", 0)
		s.text.Model.Placeholder = "Waiting for input..."
		s.setFocus(focusSource)
	default:
		s.mode = nav.ModeType
		s.setFocus(focusText)
	}
	return s
}

func (s *InputScreen) Init() tea.Cmd {
	if s.hasSource() {
		return s.source.Init()
	}
	return s.text.Init()
}

func (s *InputScreen) Title() string {
	switch s.mode {
	case nav.ModeCamera:
		return "Camera Input"
	case nav.ModeVoice:
		return "Voice Input"
	default:
		return "Type Input"
	}
}

// Close cancels any request still in flight.
func (s *InputScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.voice.Stop()
}

func (s *InputScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	switch {
	case s.focus == focusSource && s.mode == nav.ModeCamera:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Scan"})
	case s.focus == focusSource && s.listening():
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Stop"})
	case s.focus == focusSource:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Transcribe"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Get Answer"},
		layout.KeyHint{Key: "Ctrl+G", Description: "Generate Quiz"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *InputScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		if !s.current(msg.owner, msg.gen) {
			return s, nil
		}
		s.finish()
		if msg.err != nil {
			s.setStatus(StatusExtractFailed, true)
			return s, nil
		}
		s.text.SetValue(msg.text)
		s.extracted = true
		s.setStatus("", false)
		return s, s.setFocus(focusText)

	case transcriptMsg:
		if !s.current(msg.owner, msg.gen) {
			return s, nil
		}
		s.text.SetValue(msg.text)
		return s, waitVoice(msg.updates)

	case voiceDoneMsg:
		if !s.current(msg.owner, msg.gen) {
			return s, nil
		}
		s.finish()
		switch {
		case errors.Is(msg.err, capture.ErrSpeechUnavailable):
			s.setStatus(capture.SpeechUnavailableMessage, true)
		case msg.err != nil && !errors.Is(msg.err, context.Canceled):
			s.setStatus(StatusExtractFailed, true)
		default:
			s.setStatus("", false)
		}
		if msg.text != "" {
			s.text.SetValue(msg.text)
			return s, s.setFocus(focusText)
		}
		return s, nil

	case processDoneMsg:
		if !s.current(msg.owner, msg.gen) {
			return s, nil
		}
		s.finish()
		if msg.err != nil {
			s.setStatus(StatusProcessFailed, true)
			return s, nil
		}
		s.setStatus("", false)
		return s, nav.Cmd(nav.OpenItemMsg{ID: msg.item.ItemID(), Replace: true})

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *InputScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return s, s.cycleFocus(1)
	case "shift+tab", "up":
		return s, s.cycleFocus(-1)
	case "ctrl+s":
		return s, s.process(false)
	case "ctrl+g":
		return s, s.process(true)
	case "enter":
		switch s.focus {
		case focusSource:
			if s.mode == nav.ModeCamera {
				return s, s.scan()
			}
			return s, s.toggleVoice()
		case focusQuiz:
			return s, s.process(true)
		default:
			return s, s.process(false)
		}
	}

	if s.busy && !s.listening() {
		return s, nil
	}
	return s.forward(msg)
}

func (s *InputScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case focusSource:
		s.source, cmd = s.source.Update(msg)
	case focusText:
		s.text, cmd = s.text.Update(msg)
	}
	return s, cmd
}

func (s *InputScreen) scan() tea.Cmd {
	if s.busy {
		return nil
	}
	path := strings.TrimSpace(s.source.Value())
	if path == "" {
		return nil
	}

	img, err := capture.LoadImageFile(expandHome(path))
	if err != nil {
		if errors.Is(err, capture.ErrNotImage) {
			s.setStatus(StatusNotImage, true)
		} else {
			s.setStatus(StatusExtractFailed, true)
		}
		return nil
	}

	ctx, gen := s.begin()
	s.setStatus(StatusScanning, false)
	owner, svc := s, s.svc
	return func() tea.Msg {
		text, err := svc.Scan(ctx, img)
		return scanDoneMsg{owner: owner, gen: gen, text: text, err: err}
	}
}

func (s *InputScreen) listening() bool {
	return s.voice.Listening()
}

func (s *InputScreen) toggleVoice() tea.Cmd {
	if s.listening() {
		s.voice.Stop()
		return nil
	}
	if s.busy {
		return nil
	}
	path := strings.TrimSpace(s.source.Value())
	if path == "" {
		return nil
	}

	ctx, gen := s.begin()
	owner := s
	updates := make(chan tea.Msg, 8)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}

	run, err := s.voice.Start(ctx, expandHome(path), func(t capture.Transcript) {
		send(transcriptMsg{owner: owner, gen: gen, text: t.Text, updates: updates})
	})
	if err != nil {
		s.finish()
		s.setStatus(StatusExtractFailed, true)
		return nil
	}
	s.setStatus(StatusListening, false)

	go func() {
		text, err := run()
		send(voiceDoneMsg{owner: owner, gen: gen, text: text, err: err})
	}()
	return waitVoice(updates)
}

// waitVoice delivers the next message of a recording.
func waitVoice(updates <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (s *InputScreen) process(forceQuiz bool) tea.Cmd {
	if s.busy {
		return nil
	}
	text := s.text.Value()
	if strings.TrimSpace(text) == "" {
		s.setStatus(StatusNoText, true)
		return nil
	}

	ctx, gen := s.begin()
	if forceQuiz {
		s.setStatus(StatusCreatingQuiz, false)
	} else {
		s.setStatus(StatusAnalyzing, false)
	}
	owner, svc := s, s.svc
	return func() tea.Msg {
		item, err := svc.Process(ctx, text, forceQuiz)
		return processDoneMsg{owner: owner, gen: gen, item: item, err: err}
	}
}

// begin starts a new request generation, cancelling the previous one.
func (s *InputScreen) begin() (context.Context, int) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.gen++
	s.busy = true
	return ctx, s.gen
}

func (s *InputScreen) finish() {
	s.busy = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// current reports whether a result belongs to the latest request of
// this screen.
func (s *InputScreen) current(owner *InputScreen, gen int) bool {
	return owner == s && gen == s.gen && s.busy
}

func (s *InputScreen) setStatus(text string, isError bool) {
	s.status = text
	s.isError = isError
}

func (s *InputScreen) hasSource() bool {
	return s.mode == nav.ModeCamera || s.mode == nav.ModeVoice
}

func (s *InputScreen) cycleFocus(delta int) tea.Cmd {
	targets := []focusTarget{focusText, focusSolve, focusQuiz}
	if s.hasSource() {
		targets = append([]focusTarget{focusSource}, targets...)
	}
	idx := 0
	for i, t := range targets {
		if t == s.focus {
			idx = i
		}
	}
	idx = (idx + delta + len(targets)) % len(targets)
	return s.setFocus(targets[idx])
}

func (s *InputScreen) setFocus(f focusTarget) tea.Cmd {
	s.focus = f
	s.text.Blur()
	if s.hasSource() {
		s.source.Blur()
	}
	switch f {
	case focusSource:
		return s.source.Focus()
	case focusText:
		return s.text.Focus()
	}
	return nil
}
