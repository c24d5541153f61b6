package assistant

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// OllamaProvider completes prompts against a local Ollama daemon's
// /api/generate endpoint.
type OllamaProvider struct {
	client *resty.Client
	model  string
}

// NewOllamaProvider builds a provider for the given base URL (default
// http://localhost:11434) and model name.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second)
	return &OllamaProvider{client: client, model: model}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

func (p *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	var out ollamaGenerateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(ollamaGenerateRequest{Model: p.model, Prompt: prompt, Stream: false}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ollama generate: status %d", resp.StatusCode())
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama generate: %s", out.Error)
	}
	return out.Response, nil
}

// HealthPing checks /api/tags, the cheapest endpoint that proves the daemon
// is up and serving.
func (p *OllamaProvider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama health: status %d", resp.StatusCode())
	}
	return nil
}
