// Package capture turns user input (image files, voice recordings, typed
// text) into material the gateway can work with.
package capture

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/abhisek/smartstudy/internal/llm"
)

// ErrNotImage is returned when input bytes are not a supported image.
var ErrNotImage = errors.New("not a supported image")

// MaxImageBytes bounds the size of an image sent inline to the model.
const MaxImageBytes = 20 << 20

var imageMIMETypes = []string{
	"image/png",
	"image/jpeg",
	"image/webp",
	"image/gif",
	"image/heic",
	"image/heif",
}

var dataURLPrefix = regexp.MustCompile(`^data:image/(png|jpeg|jpg|webp);base64,`)

// LoadImageFile reads an image from disk and detects its MIME type from
// the content, ignoring the file extension.
func LoadImageFile(path string) (llm.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return llm.Image{}, fmt.Errorf("stat image: %w", err)
	}
	if info.IsDir() {
		return llm.Image{}, fmt.Errorf("%s is a directory: %w", path, ErrNotImage)
	}
	if info.Size() > MaxImageBytes {
		return llm.Image{}, fmt.Errorf("image is %d bytes, limit is %d", info.Size(), MaxImageBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return llm.Image{}, fmt.Errorf("read image: %w", err)
	}
	return sniffImage(data)
}

// DecodeImage decodes a data URL (data:image/png;base64,...) or bare
// base64 into an image.
func DecodeImage(s string) (llm.Image, error) {
	s = strings.TrimSpace(s)
	if loc := dataURLPrefix.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	} else if strings.HasPrefix(s, "data:") {
		return llm.Image{}, fmt.Errorf("unsupported data URL: %w", ErrNotImage)
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return llm.Image{}, fmt.Errorf("decode base64 image: %w", err)
	}
	// The declared type is ignored; the content decides.
	return sniffImage(data)
}

func sniffImage(data []byte) (llm.Image, error) {
	if len(data) == 0 {
		return llm.Image{}, fmt.Errorf("empty input: %w", ErrNotImage)
	}
	if len(data) > MaxImageBytes {
		return llm.Image{}, fmt.Errorf("image is %d bytes, limit is %d", len(data), MaxImageBytes)
	}

	m := mimetype.Detect(data)
	for _, t := range imageMIMETypes {
		if m.Is(t) {
			return llm.Image{MIMEType: t, Data: data}, nil
		}
	}
	return llm.Image{}, fmt.Errorf("detected %s: %w", m.String(), ErrNotImage)
}
