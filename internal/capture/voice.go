package capture

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"

	"github.com/abhisek/smartstudy/internal/llm"
)

// ErrSpeechUnavailable is returned when no speech recognizer is configured.
var ErrSpeechUnavailable = errors.New("speech recognition unavailable")

// ErrAlreadyListening is returned when a voice session is started twice.
var ErrAlreadyListening = errors.New("already listening")

// SpeechUnavailableMessage is the status shown when voice input cannot run.
const SpeechUnavailableMessage = "Voice recognition not supported in this environment."

// Transcript is one recognition result. Each result replaces the text of
// the previous one; Final marks the last result of a recording.
type Transcript struct {
	Text  string
	Final bool
}

// Recognizer converts a recorded audio file to text. Recognize blocks
// until recognition ends, calling onResult for every transcript.
type Recognizer interface {
	Recognize(ctx context.Context, audioPath string, onResult func(Transcript)) error
}

// NewRecognizer returns a WhisperRecognizer when an OpenAI key is
// configured, and Unavailable otherwise.
func NewRecognizer(cfg llm.OpenAIConfig) Recognizer {
	if cfg.APIKey == "" {
		return Unavailable{}
	}
	return NewWhisperRecognizer(cfg.APIKey, cfg.BaseURL)
}

// Unavailable is the Recognizer used when speech recognition is not set up.
type Unavailable struct{}

// Recognize always fails with ErrSpeechUnavailable.
func (Unavailable) Recognize(context.Context, string, func(Transcript)) error {
	return ErrSpeechUnavailable
}

// WhisperRecognizer transcribes audio with the OpenAI transcription API.
type WhisperRecognizer struct {
	client *openai.Client
	model  string
}

// NewWhisperRecognizer creates a recognizer. baseURL may be empty.
func NewWhisperRecognizer(apiKey, baseURL string) *WhisperRecognizer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &WhisperRecognizer{
		client: openai.NewClientWithConfig(config),
		model:  openai.Whisper1,
	}
}

// Recognize uploads the file and reports a single final transcript.
func (w *WhisperRecognizer) Recognize(ctx context.Context, audioPath string, onResult func(Transcript)) error {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
		Language: "en",
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return fmt.Errorf("transcribe %s: %w", filepath.Base(audioPath), err)
	}
	onResult(Transcript{Text: strings.TrimSpace(resp.Text), Final: true})
	return nil
}

// VoiceSession tracks a single start/stop recording toggle and the text
// recognised so far.
type VoiceSession struct {
	rec Recognizer

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
	text      string
}

// NewVoiceSession creates an idle session.
func NewVoiceSession(rec Recognizer) *VoiceSession {
	if rec == nil {
		rec = Unavailable{}
	}
	return &VoiceSession{rec: rec}
}

// Listening reports whether a recognition is in flight.
func (v *VoiceSession) Listening() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.listening
}

// Text returns the latest transcript text.
func (v *VoiceSession) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text
}

// Start marks the session as listening and returns a function that runs
// recognition to completion and yields the final text. The caller runs
// the function, usually in a goroutine. Stop cancels it. onResult, when
// non-nil, sees every transcript after it replaces the session text.
func (v *VoiceSession) Start(ctx context.Context, audioPath string, onResult func(Transcript)) (func() (string, error), error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listening {
		return nil, ErrAlreadyListening
	}

	ctx, cancel := context.WithCancel(ctx)
	v.listening = true
	v.cancel = cancel
	v.text = ""

	run := func() (string, error) {
		defer v.finish()
		err := v.rec.Recognize(ctx, audioPath, func(t Transcript) {
			v.mu.Lock()
			v.text = t.Text
			v.mu.Unlock()
			if onResult != nil {
				onResult(t)
			}
		})
		return v.Text(), err
	}
	return run, nil
}

// Stop cancels an in-flight recognition. It is a no-op when idle.
func (v *VoiceSession) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cancel != nil {
		v.cancel()
	}
}

func (v *VoiceSession) finish() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listening = false
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}
