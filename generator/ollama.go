package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"readme_gen/apperr"
)

const ollamaBaseURL = "http://localhost:11434"

// OllamaProvider calls a local Ollama server. It needs no credential.
type OllamaProvider struct {
	baseURL string
	client  *http.Client
}

func newOllama(s Settings) (Provider, error) {
	base := strings.TrimSpace(s.BaseURL)
	if base == "" {
		base = ollamaBaseURL
	}
	// OLLAMA_HOST is often given as host:port
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(base, "/"),
		client:  s.httpClient(),
	}, nil
}

func (op *OllamaProvider) Name() string { return "ollama" }

func (op *OllamaProvider) Complete(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":   req.Model,
		"system":  req.Prompt.System,
		"prompt":  req.Prompt.User,
		"stream":  false,
		"options": map[string]any{"num_predict": req.MaxTokens},
	})
	if err != nil {
		return "", apperr.Provider(op.Name(), "encode request", err)
	}

	raw, err := postJSON(ctx, op.client, op.Name(), op.baseURL+"/api/generate", nil, body)
	if err != nil {
		return "", err
	}

	text := gjson.GetBytes(raw, "response")
	if !text.Exists() {
		return "", apperr.Provider(op.Name(), "response has no text", nil)
	}
	return text.String(), nil
}
