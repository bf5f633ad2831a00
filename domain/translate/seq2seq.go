package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Seq2Seq calls a text2text-generation endpoint serving a sequence-to-sequence
// model (the mT5 weights under the models root) with beam-search parameters.
type Seq2Seq struct {
	endpoint string
	modelDir string
	params   *Params
	http     *http.Client
	logger   *slog.Logger
}

type generateRequest struct {
	Model      string             `json:"model"`
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	NumBeams  int  `json:"num_beams"`
	MaxLength int  `json:"max_length"`
	DoSample  bool `json:"do_sample"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type apiError struct {
	Error string `json:"error"`
}

// NewSeq2Seq checks that modelDir looks like a model directory and returns a client.
func NewSeq2Seq(endpoint, modelDir string, params *Params, hc *http.Client, logger *slog.Logger) (*Seq2Seq, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("translator endpoint is required")
	}
	if params == nil {
		return nil, errors.New("decoding parameters are required")
	}
	if err := checkModelDir(modelDir); err != nil {
		return nil, err
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Seq2Seq{endpoint: endpoint, modelDir: modelDir, params: params, http: hc, logger: logger}, nil
}

func checkModelDir(dir string) error {
	st, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		return fmt.Errorf("missing model config: %w", err)
	}
	return nil
}

// warmUpText is translated once at startup.
const warmUpText = "こんにちは"

// Check runs one generation with the current decoding parameters so a
// missing or failing inference server is reported before the first pass.
func (s *Seq2Seq) Check(ctx context.Context) error {
	if _, err := s.Translate(ctx, warmUpText); err != nil {
		return fmt.Errorf("warm-up request to %s: %w", s.endpoint, err)
	}
	if s.logger != nil {
		s.logger.Info("translator model loaded", "backend", "seq2seq", "path", s.modelDir, "endpoint", s.endpoint)
	}
	return nil
}

// Translate sends the marked text and returns the first generation.
func (s *Seq2Seq) Translate(ctx context.Context, text string) (string, error) {
	dec := s.params.Get()
	body, err := json.Marshal(generateRequest{
		Model:  s.modelDir,
		Inputs: dec.Prompt(text),
		Parameters: generateParameters{
			NumBeams:  dec.NumBeams,
			MaxLength: dec.MaxLength,
			DoSample:  false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(raw, &ae) == nil && ae.Error != "" {
			return "", fmt.Errorf("endpoint returned %d: %s", resp.StatusCode, ae.Error)
		}
		return "", fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	out, err := decodeGeneration(raw)
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// decodeGeneration accepts the pipeline list form [{"generated_text": ...}]
// as well as a bare object.
func decodeGeneration(raw []byte) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errors.New("empty response")
	}
	if raw[0] == '[' {
		var list []generation
		if err := json.Unmarshal(raw, &list); err != nil {
			return "", fmt.Errorf("decode response: %w", err)
		}
		if len(list) == 0 {
			return "", errors.New("no generations in response")
		}
		return list[0].GeneratedText, nil
	}
	var g generation
	if err := json.Unmarshal(raw, &g); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return g.GeneratedText, nil
}
