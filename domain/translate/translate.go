// Package translate wraps the machine-translation backends.
//
// Every backend prepends the configured direction marker (default "ja2zh: ")
// to the source text and asks for deterministic, length-bounded decoding.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-translate-go/config"
)

// Translator turns source-language text into target-language text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Decoding holds the fixed generation parameters sent with every request.
type Decoding struct {
	Marker    string
	NumBeams  int
	MaxLength int
}

// DecodingFromConfig extracts the decoding parameters.
func DecodingFromConfig(cfg *config.Config) Decoding {
	return Decoding{Marker: cfg.DirectionMarker, NumBeams: cfg.NumBeams, MaxLength: cfg.MaxLength}
}

// Prompt returns text prefixed with the direction marker.
func (d Decoding) Prompt(text string) string { return d.Marker + text }

// Params shares the decoding parameters between the backends and the settings
// panel; changes apply to the next request.
type Params struct{ v atomic.Pointer[Decoding] }

// NewParams returns params holding d.
func NewParams(d Decoding) *Params {
	p := &Params{}
	p.Set(d)
	return p
}

// Get returns the current parameters.
func (p *Params) Get() Decoding { return *p.v.Load() }

// Set replaces the parameters.
func (p *Params) Set(d Decoding) { p.v.Store(&d) }

// Update copies the decoding fields of cfg into p.
func (p *Params) Update(cfg *config.Config) { p.Set(DecodingFromConfig(cfg)) }

// LoadError reports a model that could not be loaded at startup.
type LoadError struct {
	Model string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("translate: load model %q: %v", e.Model, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// New builds the configured translator, verifies its model and wraps it in a
// cache. params may be nil, in which case they are taken from cfg.
func New(ctx context.Context, cfg *config.Config, params *Params, logger *slog.Logger) (Translator, error) {
	if params == nil {
		params = NewParams(DecodingFromConfig(cfg))
	}
	var t Translator
	switch cfg.TranslatorBackend {
	case config.TranslatorOllama:
		o, err := NewOllama(cfg.OllamaHost, cfg.OllamaTranslateModel, params, logger)
		if err != nil {
			return nil, &LoadError{Model: cfg.OllamaTranslateModel, Err: err}
		}
		if err := o.Check(ctx); err != nil {
			return nil, &LoadError{Model: cfg.OllamaTranslateModel, Err: err}
		}
		t = o
	default:
		s, err := NewSeq2Seq(cfg.TranslatorEndpoint, cfg.TranslatorModelPath(), params, &http.Client{Timeout: 2 * time.Minute}, logger)
		if err != nil {
			return nil, &LoadError{Model: cfg.TranslatorModelPath(), Err: err}
		}
		if err := s.Check(ctx); err != nil {
			return nil, &LoadError{Model: cfg.TranslatorModelPath(), Err: err}
		}
		t = s
	}
	if cfg.CacheSize > 0 {
		c, err := NewCached(t, params, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		t = c
	}
	return t, nil
}
