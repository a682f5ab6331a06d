package generator

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"readme_gen/apperr"
)

// GoogleProvider calls Gemini through the genai SDK.
type GoogleProvider struct {
	cfg *genai.ClientConfig
}

func newGoogle(s Settings) (Provider, error) {
	cfg := &genai.ClientConfig{
		APIKey:     s.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: s.httpClient(),
	}
	if s.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}
	return &GoogleProvider{cfg: cfg}, nil
}

func (g *GoogleProvider) Name() string { return "google" }

func (g *GoogleProvider) Complete(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, g.cfg)
	if err != nil {
		return "", apperr.Provider(g.Name(), "create client", err)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt.User), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.Prompt.System}}},
		MaxOutputTokens:   int32(req.MaxTokens),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", apperr.Provider(g.Name(), fmt.Sprintf("status %d", apiErr.Code), err)
		}
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", apperr.Provider(g.Name(), "no candidates", nil)
	}
	return resp.Text(), nil
}
