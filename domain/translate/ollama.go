package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const ollamaSystem = "You translate Japanese into Simplified Chinese. " +
	"The input starts with a direction tag such as \"ja2zh: \". " +
	"Reply with the translation only."

// Ollama translates with a general LLM served by Ollama. Ollama has no beam
// search; decoding is greedy (temperature 0) and bounded by MaxLength tokens.
type Ollama struct {
	client *api.Client
	model  string
	params *Params
	logger *slog.Logger
}

// NewOllama creates a translation client for host.
func NewOllama(host, model string, params *Params, logger *slog.Logger) (*Ollama, error) {
	return newOllamaWithHTTP(host, model, params, http.DefaultClient, logger)
}

func newOllamaWithHTTP(host, model string, params *Params, hc *http.Client, logger *slog.Logger) (*Ollama, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model is required")
	}
	if params == nil {
		return nil, errors.New("decoding parameters are required")
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}
	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	return &Ollama{client: api.NewClient(base, hc), model: model, params: params, logger: logger}, nil
}

// Check verifies the model is present on the server.
func (o *Ollama) Check(ctx context.Context) error {
	if _, err := o.client.Show(ctx, &api.ShowRequest{Model: o.model}); err != nil {
		return err
	}
	if o.logger != nil {
		o.logger.Info("translator model loaded", "backend", "ollama", "model", o.model)
	}
	return nil
}

// Translate generates the translation of text.
func (o *Ollama) Translate(ctx context.Context, text string) (string, error) {
	dec := o.params.Get()
	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		System: ollamaSystem,
		Prompt: dec.Prompt(text),
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0,
			"num_predict": dec.MaxLength,
		},
	}
	var out strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return strings.TrimSpace(out.String()), nil
}
