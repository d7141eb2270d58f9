package input

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/smartstudy/internal/capture"
	"github.com/abhisek/smartstudy/internal/history"
	"github.com/abhisek/smartstudy/internal/llm"
	"github.com/abhisek/smartstudy/internal/screens/nav"
)

type processCall struct {
	ctx       context.Context
	text      string
	forceQuiz bool
}

type fakeService struct {
	scanText string
	scanErr  error
	scanned  []llm.Image

	item       history.Item
	processErr error
	processed  []processCall
}

func (f *fakeService) Scan(_ context.Context, img llm.Image) (string, error) {
	f.scanned = append(f.scanned, img)
	return f.scanText, f.scanErr
}

func (f *fakeService) Process(ctx context.Context, text string, forceQuiz bool) (history.Item, error) {
	f.processed = append(f.processed, processCall{ctx: ctx, text: text, forceQuiz: forceQuiz})
	return f.item, f.processErr
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func solution(id string) history.Item {
	return history.NewSolution(id, time.Now(), "1+1", "2", nil)
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "page.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTypeModeSolveNavigatesToItem(t *testing.T) {
	svc := &fakeService{item: solution("item-1")}
	s := New(nav.ModeType, svc, nil)
	if s.focus != focusText {
		t.Fatalf("type mode should focus the text field, got %d", s.focus)
	}

	s.text.SetValue("1+1")
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a process command")
	}
	if s.status != StatusAnalyzing {
		t.Errorf("status = %q, want %q", s.status, StatusAnalyzing)
	}

	_, cmd = s.Update(cmd())
	if len(svc.processed) != 1 || svc.processed[0].text != "1+1" || svc.processed[0].forceQuiz {
		t.Fatalf("unexpected process calls: %+v", svc.processed)
	}
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	open, ok := cmd().(nav.OpenItemMsg)
	if !ok {
		t.Fatal("expected OpenItemMsg")
	}
	if open.ID != "item-1" || !open.Replace {
		t.Errorf("got %+v, want replace navigation to item-1", open)
	}
	if s.busy {
		t.Error("screen should not be busy after the result")
	}
}

func TestGenerateQuizForcesQuiz(t *testing.T) {
	svc := &fakeService{item: solution("q")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("photosynthesis")

	_, cmd := s.Update(ctrlKey('g'))
	if s.status != StatusCreatingQuiz {
		t.Errorf("status = %q, want %q", s.status, StatusCreatingQuiz)
	}
	s.Update(cmd())
	if !svc.processed[0].forceQuiz {
		t.Error("ctrl+g should force quiz mode")
	}
}

func TestQuizButtonForcesQuiz(t *testing.T) {
	svc := &fakeService{item: solution("q")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("photosynthesis")

	s.Update(specialKey(tea.KeyTab)) // solve
	s.Update(specialKey(tea.KeyTab)) // quiz
	if s.focus != focusQuiz {
		t.Fatalf("focus = %d, want quiz button", s.focus)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	if !svc.processed[0].forceQuiz {
		t.Error("quiz button should force quiz mode")
	}
}

func TestBlankTextIsNotSubmitted(t *testing.T) {
	svc := &fakeService{}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("   ")

	if _, cmd := s.Update(ctrlKey('s')); cmd != nil {
		t.Error("blank text should not start a request")
	}
	if s.status != StatusNoText || !s.isError {
		t.Errorf("status = %q, want %q", s.status, StatusNoText)
	}
}

func TestProcessFailureShowsStatus(t *testing.T) {
	svc := &fakeService{processErr: errors.New("boom")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("1+1")

	_, cmd := s.Update(ctrlKey('s'))
	_, cmd = s.Update(cmd())
	if cmd != nil {
		t.Error("failure should not navigate")
	}
	if s.status != StatusProcessFailed || !s.isError {
		t.Errorf("status = %q, want %q", s.status, StatusProcessFailed)
	}
	if s.text.Value() != "1+1" {
		t.Error("failed request should keep the typed text")
	}
}

func TestSecondSubmitWhileBusyIgnored(t *testing.T) {
	svc := &fakeService{item: solution("x")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("1+1")

	_, first := s.Update(ctrlKey('s'))
	if first == nil {
		t.Fatal("expected first request")
	}
	if _, second := s.Update(ctrlKey('s')); second != nil {
		t.Error("second request while busy should be ignored")
	}
}

func TestStaleResultDropped(t *testing.T) {
	svc := &fakeService{item: solution("x")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("1+1")
	s.Update(ctrlKey('s'))

	_, cmd := s.Update(processDoneMsg{owner: s, gen: s.gen - 1, item: solution("old")})
	if cmd != nil {
		t.Error("result from an older request should be dropped")
	}

	other := New(nav.ModeType, svc, nil)
	_, cmd = s.Update(processDoneMsg{owner: other, gen: s.gen, item: solution("other")})
	if cmd != nil {
		t.Error("result addressed to another screen should be dropped")
	}
	if !s.busy {
		t.Error("screen should still wait for its own result")
	}
}

func TestCloseCancelsInFlightRequest(t *testing.T) {
	svc := &fakeService{item: solution("x")}
	s := New(nav.ModeType, svc, nil)
	s.text.SetValue("1+1")

	_, cmd := s.Update(ctrlKey('s'))
	s.Close()
	cmd()

	if err := svc.processed[0].ctx.Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("ctx.Err() = %v, want context.Canceled", err)
	}
}

func TestCameraScanFillsText(t *testing.T) {
	svc := &fakeService{scanText: "2x + 3 = 7"}
	s := New(nav.ModeCamera, svc, nil)
	if s.focus != focusSource {
		t.Fatalf("camera mode should focus the file field, got %d", s.focus)
	}

	s.source.SetValue(writePNG(t, t.TempDir()))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected scan command")
	}
	if s.status != StatusScanning {
		t.Errorf("status = %q, want %q", s.status, StatusScanning)
	}

	s.Update(cmd())
	if len(svc.scanned) != 1 || svc.scanned[0].MIMEType != "image/png" {
		t.Fatalf("unexpected scans: %+v", svc.scanned)
	}
	if s.text.Value() != "2x + 3 = 7" {
		t.Errorf("text = %q", s.text.Value())
	}
	if s.focus != focusText || !s.extracted {
		t.Error("scan result should move focus to the editable text")
	}
	if s.status != "" {
		t.Errorf("status should clear, got %q", s.status)
	}
}

func TestCameraRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := &fakeService{}
	s := New(nav.ModeCamera, svc, nil)
	s.source.SetValue(path)

	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("non-image should not be scanned")
	}
	if s.status != StatusNotImage {
		t.Errorf("status = %q, want %q", s.status, StatusNotImage)
	}
}

func TestCameraScanFailure(t *testing.T) {
	svc := &fakeService{scanErr: errors.New("ocr down")}
	s := New(nav.ModeCamera, svc, nil)
	s.source.SetValue(writePNG(t, t.TempDir()))

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	if s.status != StatusExtractFailed {
		t.Errorf("status = %q, want %q", s.status, StatusExtractFailed)
	}
}

type fixedRecognizer struct{ text string }

func (r fixedRecognizer) Recognize(_ context.Context, _ string, onResult func(capture.Transcript)) error {
	onResult(capture.Transcript{Text: r.text, Final: true})
	return nil
}

// drainVoice feeds recording messages to the screen until none remain.
func drainVoice(s *InputScreen, cmd tea.Cmd) {
	for cmd != nil {
		_, cmd = s.Update(cmd())
	}
}

func TestVoiceTranscriptFillsText(t *testing.T) {
	svc := &fakeService{}
	s := New(nav.ModeVoice, svc, capture.NewVoiceSession(fixedRecognizer{text: "what is 2+2"}))
	s.source.SetValue("question.wav")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.busy || s.status != StatusListening {
		t.Fatalf("expected listening state, status %q", s.status)
	}
	drainVoice(s, cmd)
	if s.listening() || s.busy {
		t.Error("listening should end with the transcript")
	}
	if s.text.Value() != "what is 2+2" {
		t.Errorf("text = %q", s.text.Value())
	}
}

// gatedRecognizer reports an interim transcript, then waits for release
// before the final one.
type gatedRecognizer struct {
	interim, final string
	release        chan struct{}
}

func (r gatedRecognizer) Recognize(ctx context.Context, _ string, onResult func(capture.Transcript)) error {
	onResult(capture.Transcript{Text: r.interim})
	select {
	case <-r.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	onResult(capture.Transcript{Text: r.final, Final: true})
	return nil
}

func TestVoiceInterimTranscriptReplacesText(t *testing.T) {
	rec := gatedRecognizer{interim: "what is", final: "what is photosynthesis", release: make(chan struct{})}
	s := New(nav.ModeVoice, &fakeService{}, capture.NewVoiceSession(rec))
	s.source.SetValue("question.wav")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	_, cmd = s.Update(cmd())
	if s.text.Value() != "what is" {
		t.Errorf("interim text = %q, want %q", s.text.Value(), "what is")
	}
	if !s.listening() {
		t.Error("still listening after an interim transcript")
	}
	if cmd == nil {
		t.Fatal("expected a command waiting for the rest of the recording")
	}

	close(rec.release)
	drainVoice(s, cmd)
	if s.text.Value() != "what is photosynthesis" {
		t.Errorf("final text = %q", s.text.Value())
	}
	if s.busy || s.listening() {
		t.Error("recording should be finished")
	}
}

func TestVoiceUnavailable(t *testing.T) {
	s := New(nav.ModeVoice, &fakeService{}, nil)
	s.source.SetValue("question.wav")

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	if s.status != capture.SpeechUnavailableMessage {
		t.Errorf("status = %q, want %q", s.status, capture.SpeechUnavailableMessage)
	}
}

func TestTitles(t *testing.T) {
	tests := map[nav.InputMode]string{
		nav.ModeCamera: "Camera Input",
		nav.ModeVoice:  "Voice Input",
		nav.ModeType:   "Type Input",
	}
	for mode, want := range tests {
		if got := New(mode, &fakeService{}, nil).Title(); got != want {
			t.Errorf("%s: Title() = %q, want %q", mode, got, want)
		}
	}
}
