package capture

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/smartstudy/internal/llm"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLoadImageFile(t *testing.T) {
	data := pngBytes(t)
	// Extension is deliberately wrong; content decides.
	path := writeFile(t, "homework.jpg", data)

	img, err := LoadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, data, img.Data)
}

func TestLoadImageFile_Rejects(t *testing.T) {
	t.Run("text file", func(t *testing.T) {
		path := writeFile(t, "notes.png", []byte("just some notes\n"))
		_, err := LoadImageFile(path)
		assert.ErrorIs(t, err, ErrNotImage)
	})
	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.png", nil)
		_, err := LoadImageFile(path)
		assert.ErrorIs(t, err, ErrNotImage)
	})
	t.Run("directory", func(t *testing.T) {
		_, err := LoadImageFile(t.TempDir())
		assert.ErrorIs(t, err, ErrNotImage)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := LoadImageFile(filepath.Join(t.TempDir(), "nope.png"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDecodeImage(t *testing.T) {
	pngData := pngBytes(t)
	jpegData := jpegBytes(t)
	pngB64 := base64.StdEncoding.EncodeToString(pngData)
	jpegB64 := base64.StdEncoding.EncodeToString(jpegData)

	tests := []struct {
		name     string
		in       string
		wantMIME string
		want     []byte
	}{
		{"png data url", "data:image/png;base64," + pngB64, "image/png", pngData},
		{"jpg data url", "data:image/jpg;base64," + jpegB64, "image/jpeg", jpegData},
		{"bare base64", jpegB64, "image/jpeg", jpegData},
		{"declared type ignored", "data:image/webp;base64," + pngB64, "image/png", pngData},
		{"surrounding whitespace", "  " + pngB64 + "\n", "image/png", pngData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeImage(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, img.MIMEType)
			assert.Equal(t, tt.want, img.Data)
		})
	}
}

func TestDecodeImage_Errors(t *testing.T) {
	_, err := DecodeImage("data:application/pdf;base64,AAAA")
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = DecodeImage("not base64 at all!")
	assert.Error(t, err)

	_, err = DecodeImage(base64.StdEncoding.EncodeToString([]byte("hello world")))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestNewRecognizer(t *testing.T) {
	_, ok := NewRecognizer(llm.OpenAIConfig{}).(Unavailable)
	assert.True(t, ok)

	_, ok = NewRecognizer(llm.OpenAIConfig{APIKey: "sk-test"}).(*WhisperRecognizer)
	assert.True(t, ok)
}

func TestUnavailable(t *testing.T) {
	called := false
	err := Unavailable{}.Recognize(context.Background(), "a.wav", func(Transcript) { called = true })
	assert.ErrorIs(t, err, ErrSpeechUnavailable)
	assert.False(t, called)
}

func TestWhisperRecognizer(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/audio/transcriptions") {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"text": "  what is photosynthesis  "})
	}))
	t.Cleanup(server.Close)

	path := writeFile(t, "question.wav", []byte("RIFF....WAVEfmt "))
	rec := NewWhisperRecognizer("test-key", server.URL+"/v1")

	var got []Transcript
	err := rec.Recognize(context.Background(), path, func(tr Transcript) { got = append(got, tr) })
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, []Transcript{{Text: "what is photosynthesis", Final: true}}, got)
}

func TestWhisperRecognizer_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "bad key", "type": "invalid_request_error"}})
	}))
	t.Cleanup(server.Close)

	path := writeFile(t, "question.wav", []byte("RIFF"))
	rec := NewWhisperRecognizer("test-key", server.URL+"/v1")
	err := rec.Recognize(context.Background(), path, func(Transcript) {})
	assert.ErrorContains(t, err, "question.wav")
}

type scriptedRecognizer struct {
	results []Transcript
	err     error
	block   bool
}

func (s *scriptedRecognizer) Recognize(ctx context.Context, _ string, onResult func(Transcript)) error {
	for _, r := range s.results {
		onResult(r)
	}
	if s.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return s.err
}

func TestVoiceSession_LatestTranscriptWins(t *testing.T) {
	rec := &scriptedRecognizer{results: []Transcript{
		{Text: "what is"},
		{Text: "what is photo"},
		{Text: "what is photosynthesis", Final: true},
	}}
	v := NewVoiceSession(rec)

	var seen []string
	run, err := v.Start(context.Background(), "a.wav", func(tr Transcript) {
		seen = append(seen, tr.Text)
		assert.Equal(t, tr.Text, v.Text(), "session text should already hold the transcript")
	})
	require.NoError(t, err)
	assert.True(t, v.Listening())

	text, err := run()
	require.NoError(t, err)
	assert.Equal(t, "what is photosynthesis", text)
	assert.Equal(t, []string{"what is", "what is photo", "what is photosynthesis"}, seen)
	assert.False(t, v.Listening())
}

func TestVoiceSession_Toggle(t *testing.T) {
	rec := &scriptedRecognizer{results: []Transcript{{Text: "partial"}}, block: true}
	v := NewVoiceSession(rec)

	run, err := v.Start(context.Background(), "a.wav", nil)
	require.NoError(t, err)

	_, err = v.Start(context.Background(), "a.wav", nil)
	assert.ErrorIs(t, err, ErrAlreadyListening)

	done := make(chan error, 1)
	var text string
	go func() {
		var err error
		text, err = run()
		done <- err
	}()

	v.Stop()
	err = <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, "partial", text)
	assert.False(t, v.Listening())

	// Idle again, so a new recording can start.
	_, err = v.Start(context.Background(), "b.wav", nil)
	assert.NoError(t, err)
}

func TestVoiceSession_Unavailable(t *testing.T) {
	v := NewVoiceSession(nil)
	run, err := v.Start(context.Background(), "a.wav", nil)
	require.NoError(t, err)
	_, err = run()
	assert.ErrorIs(t, err, ErrSpeechUnavailable)
	assert.False(t, v.Listening())
}
