// Package ocr wraps the text-recognition backends behind a single interface.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/pixel-translate-go/config"
)

// Recognizer extracts text from an image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// LoadError reports a model that could not be loaded at startup.
type LoadError struct {
	Model string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("ocr: load model %q: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// New builds the configured recognizer and verifies its model is available.
// The result is a *Preprocessed so the cleanup step can be toggled at runtime.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Recognizer, error) {
	r, err := newBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	p := NewPreprocessed(r, DefaultPreprocessor())
	p.SetEnabled(cfg.OCRPreprocess)
	return p, nil
}

func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Recognizer, error) {
	switch cfg.OCRBackend {
	case config.OCROllama:
		r, err := NewOllama(cfg.OllamaHost, cfg.OllamaOCRModel, logger)
		if err != nil {
			return nil, &LoadError{Model: cfg.OllamaOCRModel, Err: err}
		}
		if err := r.Check(ctx); err != nil {
			return nil, &LoadError{Model: cfg.OllamaOCRModel, Err: err}
		}
		return r, nil
	default:
		r, err := NewTesseract(cfg.OCRModelPath(), cfg.OCRLanguage, logger)
		if err != nil {
			return nil, &LoadError{Model: cfg.OCRModelPath(), Err: err}
		}
		return r, nil
	}
}

// Preprocessed runs a Preprocessor before the wrapped recognizer while enabled.
type Preprocessed struct {
	next    Recognizer
	pre     Preprocessor
	enabled atomic.Bool
}

// NewPreprocessed wraps r; the preprocessor starts enabled.
func NewPreprocessed(r Recognizer, pre Preprocessor) *Preprocessed {
	p := &Preprocessed{next: r, pre: pre}
	p.enabled.Store(pre != nil)
	return p
}

// SetEnabled switches preprocessing for subsequent calls.
func (p *Preprocessed) SetEnabled(on bool) { p.enabled.Store(on && p.pre != nil) }

// Enabled reports whether preprocessing is applied.
func (p *Preprocessed) Enabled() bool { return p.enabled.Load() }

func (p *Preprocessed) Recognize(ctx context.Context, img image.Image) (string, error) {
	if p.enabled.Load() {
		img = p.pre(img)
	}
	return p.next.Recognize(ctx, img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases backend resources when the recognizer holds any.
func Close(r Recognizer) error {
	if p, ok := r.(*Preprocessed); ok {
		r = p.next
	}
	if c, ok := r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
