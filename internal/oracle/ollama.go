package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaClient talks to an Ollama-compatible /api/generate endpoint.
type OllamaClient struct {
	url   string
	model string
	httpc *http.Client

	// Temperature is passed through as a sampling option when non-zero.
	Temperature float64
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllamaClient builds a client for the given endpoint URL and model.
// The timeout bounds each Generate call so a stalled model cannot hang the
// whole pipeline run.
func NewOllamaClient(url, model string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		url:   url,
		model: model,
		httpc: &http.Client{Timeout: timeout},
	}
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ollamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	}
	if c.Temperature != 0 {
		reqBody.Options = &ollamaOptions{Temperature: c.Temperature}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	return strings.TrimSpace(out.Response), nil
}
