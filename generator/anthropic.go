package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"readme_gen/apperr"
)

const anthropicBaseURL = "https://api.anthropic.com"

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func newAnthropic(s Settings) (Provider, error) {
	base := s.BaseURL
	if base == "" {
		base = anthropicBaseURL
	}
	return &AnthropicProvider{
		apiKey:  s.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		client:  s.httpClient(),
	}, nil
}

func (ap *AnthropicProvider) Name() string { return "anthropic" }

func (ap *AnthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":      req.Model,
		"max_tokens": req.MaxTokens,
		"system":     req.Prompt.System,
		"messages":   []map[string]string{{"role": "user", "content": req.Prompt.User}},
	})
	if err != nil {
		return "", apperr.Provider(ap.Name(), "encode request", err)
	}

	raw, err := postJSON(ctx, ap.client, ap.Name(), ap.baseURL+"/v1/messages", map[string]string{
		"x-api-key":         ap.apiKey,
		"anthropic-version": "2023-06-01",
	}, body)
	if err != nil {
		return "", err
	}

	text := gjson.GetBytes(raw, "content.0.text")
	if !text.Exists() {
		return "", apperr.Provider(ap.Name(), "response has no content", nil)
	}
	return text.String(), nil
}
