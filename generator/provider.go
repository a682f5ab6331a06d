package generator

import (
	"context"
	"net/http"
	"sort"
	"time"

	"readme_gen/apperr"
)

// Provider abstracts one LLM backend so that callers never branch on the
// provider name.
type Provider interface {
	Name() string
	// Complete issues exactly one request and returns the raw model text.
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is a single completion call.
type Request struct {
	Prompt    Prompt
	Model     string
	MaxTokens int
}

// Settings is the resolved provider configuration handed to a factory.
type Settings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration

	// HTTPClient overrides the transport; nil builds one bounded by Timeout.
	HTTPClient *http.Client
}

func (s Settings) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: s.Timeout}
}

// Factory describes one entry of the provider table.
type Factory struct {
	Name           string
	CredentialEnv  string
	DefaultModel   string
	DefaultTimeout time.Duration
	New            func(Settings) (Provider, error)
}

const DefaultMaxTokens = 2000

var registry = map[string]Factory{
	"anthropic": {
		Name:           "anthropic",
		CredentialEnv:  "ANTHROPIC_API_KEY",
		DefaultModel:   "claude-sonnet-4-20250514",
		DefaultTimeout: 60 * time.Second,
		New:            newAnthropic,
	},
	"openai": {
		Name:           "openai",
		CredentialEnv:  "OPENAI_API_KEY",
		DefaultModel:   "gpt-4o",
		DefaultTimeout: 60 * time.Second,
		New:            newOpenAI,
	},
	"google": {
		Name:           "google",
		CredentialEnv:  "GOOGLE_API_KEY",
		DefaultModel:   "gemini-1.5-flash",
		DefaultTimeout: 60 * time.Second,
		New:            newGoogle,
	},
	"ollama": {
		Name:           "ollama",
		DefaultModel:   "llama3.2",
		DefaultTimeout: 120 * time.Second,
		New:            newOllama,
	},
}

// Names lists the supported provider identifiers in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the table entry for name.
func Lookup(name string) (Factory, bool) {
	f, ok := registry[name]
	return f, ok
}

// Resolve validates s against the table and fills in the provider defaults.
// It never touches the network.
func Resolve(s Settings) (Settings, Factory, error) {
	f, ok := registry[s.Provider]
	if !ok {
		return s, Factory{}, apperr.UnsupportedProvider(s.Provider, Names())
	}
	if f.CredentialEnv != "" && s.APIKey == "" {
		return s, f, apperr.MissingCredential(f.Name, f.CredentialEnv)
	}
	if s.Model == "" {
		s.Model = f.DefaultModel
	}
	if s.Timeout <= 0 {
		s.Timeout = f.DefaultTimeout
	}
	return s, f, nil
}

// NewProvider resolves s and builds the matching provider.
func NewProvider(s Settings) (Provider, error) {
	s, f, err := Resolve(s)
	if err != nil {
		return nil, err
	}
	return f.New(s)
}
