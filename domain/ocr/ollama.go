package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const visionPrompt = "Transcribe the Japanese text in this image exactly as written. " +
	"Return only the text, preserving line breaks, with no translation, romanization or commentary. " +
	"If there is no text, return an empty response."

// Ollama recognizes text with a vision model served by Ollama.
type Ollama struct {
	client *api.Client
	model  string
	logger *slog.Logger
}

// NewOllama creates a vision OCR client for host (e.g. http://127.0.0.1:11434).
func NewOllama(host, model string, logger *slog.Logger) (*Ollama, error) {
	return newOllamaWithHTTP(host, model, http.DefaultClient, logger)
}

func newOllamaWithHTTP(host, model string, hc *http.Client, logger *slog.Logger) (*Ollama, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("model is required")
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host: %w", err)
	}
	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	return &Ollama{client: api.NewClient(base, hc), model: model, logger: logger}, nil
}

// Check verifies the model is present on the server.
func (o *Ollama) Check(ctx context.Context) error {
	if _, err := o.client.Show(ctx, &api.ShowRequest{Model: o.model}); err != nil {
		return err
	}
	if o.logger != nil {
		o.logger.Info("ocr model loaded", "backend", "ollama", "model", o.model)
	}
	return nil
}

// Recognize sends img to the vision model and returns its transcription.
func (o *Ollama) Recognize(ctx context.Context, img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("nil image")
	}
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{{
			Role:    "user",
			Content: visionPrompt,
			Images:  []api.ImageData{api.ImageData(data)},
		}},
		Stream:  &stream,
		Options: map[string]any{"temperature": 0},
	}
	var content strings.Builder
	err = o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return strings.TrimSpace(content.String()), nil
}
