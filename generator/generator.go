package generator

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"readme_gen/apperr"
	"readme_gen/scanner"
)

// Result is a successfully generated README.
type Result struct {
	Text     string
	Title    string
	Provider string
	Model    string
	Elapsed  time.Duration
}

// Generator sends a project context to one provider under a fixed timeout.
type Generator struct {
	provider  Provider
	model     string
	timeout   time.Duration
	maxTokens int
}

// New resolves s through the provider table. Unsupported providers and
// missing credentials fail here, before any request is built.
func New(s Settings) (*Generator, error) {
	s, f, err := Resolve(s)
	if err != nil {
		return nil, err
	}
	p, err := f.New(s)
	if err != nil {
		return nil, err
	}
	return NewWithProvider(p, s)
}

// NewWithProvider wraps an already built provider.
func NewWithProvider(p Provider, s Settings) (*Generator, error) {
	if p == nil {
		return nil, errors.New("provider is required")
	}
	if s.Timeout <= 0 {
		s.Timeout = 60 * time.Second
	}
	return &Generator{provider: p, model: s.Model, timeout: s.Timeout, maxTokens: DefaultMaxTokens}, nil
}

func (g *Generator) ProviderName() string { return g.provider.Name() }

func (g *Generator) Model() string { return g.model }

// Generate issues exactly one request. Nothing is retried.
func (g *Generator) Generate(ctx context.Context, pc scanner.ProjectContext) (Result, error) {
	prompt := BuildPrompt(pc)
	name := g.provider.Name()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Debug().
		Str("provider", name).
		Str("model", g.model).
		Int("prompt_chars", len(prompt.User)).
		Dur("timeout", g.timeout).
		Msg("sending request")

	start := time.Now()
	raw, err := g.provider.Complete(ctx, Request{Prompt: prompt, Model: g.model, MaxTokens: g.maxTokens})
	elapsed := time.Since(start)
	if err != nil {
		return Result{}, classify(ctx, name, err)
	}

	text, title, err := PostProcess(raw)
	if err != nil {
		return Result{}, apperr.Provider(name, "invalid response", err)
	}

	return Result{
		Text:     text,
		Title:    title,
		Provider: name,
		Model:    g.model,
		Elapsed:  elapsed,
	}, nil
}

func classify(ctx context.Context, provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperr.Timeout(provider, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return apperr.Timeout(provider, err)
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return apperr.Provider(provider, "request canceled", err)
	}
	return apperr.Provider(provider, "request failed", err)
}
