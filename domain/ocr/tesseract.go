package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs OCR through gosseract with traineddata read from a model directory.
// A gosseract client is not safe for concurrent use, so calls are serialized.
type Tesseract struct {
	mu       sync.Mutex
	client   *gosseract.Client
	language string
	logger   *slog.Logger
}

// NewTesseract verifies that modelDir holds traineddata for every language in
// language ("jpn" or "jpn+jpn_vert") and returns a ready recognizer. The
// engine initialises lazily, so one recognition on a blank image is run here
// to surface unreadable traineddata before the first real pass.
func NewTesseract(modelDir, language string, logger *slog.Logger) (*Tesseract, error) {
	langs := splitLanguages(language)
	if len(langs) == 0 {
		return nil, errors.New("no language configured")
	}
	if err := checkTessdata(modelDir, langs); err != nil {
		return nil, err
	}
	client := gosseract.NewClient()
	if err := client.SetTessdataPrefix(modelDir); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := client.SetLanguage(langs...); err != nil {
		_ = client.Close()
		return nil, err
	}
	if err := warmUp(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	if logger != nil {
		logger.Info("ocr model loaded", "backend", "tesseract", "path", modelDir, "language", language)
	}
	return &Tesseract{client: client, language: language, logger: logger}, nil
}

func warmUp(client *gosseract.Client) error {
	blank := image.NewGray(image.Rect(0, 0, 32, 32))
	for i := range blank.Pix {
		blank.Pix[i] = 0xff
	}
	data, err := encodePNG(blank)
	if err != nil {
		return err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	if _, err := client.Text(); err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	return nil
}

func splitLanguages(language string) []string {
	var out []string
	for _, l := range strings.Split(language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func checkTessdata(dir string, langs []string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	for _, l := range langs {
		p := filepath.Join(dir, l+".traineddata")
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("missing traineddata for %q: %w", l, err)
		}
	}
	return nil
}

// Recognize encodes img as PNG and returns the recognized text.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("nil image")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return cleanText(text), nil
}

// Close releases the native tesseract handle.
func (t *Tesseract) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.client.Close()
}

// cleanText trims the result; Japanese text is joined without the spaces
// tesseract inserts between glyphs.
func cleanText(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		out = append(out, collapseCJKSpaces(l))
	}
	return strings.Join(out, "\n")
}

func collapseCJKSpaces(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r == ' ' && i > 0 && i < len(runes)-1 && isCJK(runes[i-1]) && isCJK(runes[i+1]) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isCJK(r rune) bool {
	switch {
	case r >= 0x3000 && r <= 0x30ff: // punctuation, hiragana, katakana
		return true
	case r >= 0x4e00 && r <= 0x9fff: // unified ideographs
		return true
	case r >= 0xff00 && r <= 0xffef: // full-width forms
		return true
	}
	return false
}
