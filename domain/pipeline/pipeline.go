// Package pipeline runs one OCR + translation pass over an image.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrNothingToTranslate is returned when a pass is requested without an image.
var ErrNothingToTranslate = errors.New("nothing to translate")

// Recognizer extracts text from an image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Translator turns source text into target text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Result is the outcome of one pass.
type Result struct {
	PassID  string
	Source  string
	Target  string
	OCRTime time.Duration
	Total   time.Duration
}

// Pipeline chains OCR and translation. Calls block for the full model
// inference unless a positive timeout is set.
type Pipeline struct {
	ocr        Recognizer
	translator Translator
	logger     *slog.Logger
	timeout    atomic.Int64
}

// New creates a pipeline.
func New(ocr Recognizer, translator Translator, logger *slog.Logger) *Pipeline {
	return &Pipeline{ocr: ocr, translator: translator, logger: logger}
}

// SetTimeout bounds each pass; zero or negative means no limit. Safe to call
// while passes are running, the next pass picks it up.
func (p *Pipeline) SetTimeout(d time.Duration) { p.timeout.Store(int64(d)) }

// Timeout returns the per-pass limit.
func (p *Pipeline) Timeout() time.Duration { return time.Duration(p.timeout.Load()) }

// TranslateOnce runs OCR then translation on img, synchronously.
// A nil img yields ErrNothingToTranslate without touching the OCR model.
// Blank OCR text skips the translator.
func (p *Pipeline) TranslateOnce(ctx context.Context, img image.Image) (Result, error) {
	if img == nil {
		return Result{}, ErrNothingToTranslate
	}
	if d := p.Timeout(); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	res := Result{PassID: uuid.NewString()}
	logger := p.logger
	if logger != nil {
		logger = logger.With("pass", res.PassID)
	}

	start := time.Now()
	src, err := p.ocr.Recognize(ctx, img)
	res.OCRTime = time.Since(start)
	if err != nil {
		if logger != nil {
			logger.Error("ocr failed", "error", err)
		}
		return res, fmt.Errorf("ocr: %w", err)
	}
	res.Source = strings.TrimSpace(src)
	if res.Source != "" {
		dst, err := p.translator.Translate(ctx, res.Source)
		if err != nil {
			res.Total = time.Since(start)
			if logger != nil {
				logger.Error("translation failed", "error", err, "source", res.Source)
			}
			return res, fmt.Errorf("translate: %w", err)
		}
		res.Target = dst
	}
	res.Total = time.Since(start)
	if logger != nil {
		logger.Info("translate pass",
			"ocr_ms", res.OCRTime.Milliseconds(),
			"total_ms", res.Total.Milliseconds(),
			"source_len", len([]rune(res.Source)),
			"target_len", len([]rune(res.Target)),
		)
	}
	return res, nil
}
