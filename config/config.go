package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"readme_gen/apperr"
	"readme_gen/generator"
	"readme_gen/scanner"
)

const (
	DefaultProvider = "anthropic"

	// ProjectFile is looked up inside the scanned project.
	ProjectFile = ".readme-gen.yaml"
)

// Credentials holds one API key per hosted provider.
type Credentials struct {
	Anthropic string `mapstructure:"anthropic"`
	OpenAI    string `mapstructure:"openai"`
	Google    string `mapstructure:"google"`
}

// For returns the key belonging to provider, or "" if it needs none.
func (c Credentials) For(provider string) string {
	switch provider {
	case "anthropic":
		return c.Anthropic
	case "openai":
		return c.OpenAI
	case "google":
		return c.Google
	}
	return ""
}

// Config is the merged result of defaults, config files and environment.
type Config struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"-"`
	MaxChars    int           `mapstructure:"max_chars"`
	MaxFiles    int           `mapstructure:"max_files"`
	MaxLines    int           `mapstructure:"max_lines"`
	OllamaHost  string        `mapstructure:"ollama_host"`
	Credentials Credentials   `mapstructure:"credentials"`

	// Files lists the config files that were merged, in order.
	Files []string `mapstructure:"-"`
}

var envBindings = map[string]string{
	"provider":              "LLM_PROVIDER",
	"model":                 "LLM_MODEL",
	"timeout":               "LLM_TIMEOUT",
	"base_url":              "LLM_BASE_URL",
	"ollama_host":           "OLLAMA_HOST",
	"max_chars":             "README_GEN_MAX_CHARS",
	"credentials.anthropic": "ANTHROPIC_API_KEY",
	"credentials.openai":    "OPENAI_API_KEY",
	"credentials.google":    "GOOGLE_API_KEY",
}

// GlobalConfigPath returns the per-user config file path.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "readme-gen", "config.yaml")
}

// ProjectConfigPath returns the config file path inside projectDir.
func ProjectConfigPath(projectDir string) string {
	return filepath.Join(projectDir, ProjectFile)
}

// Load merges defaults, the global file, the project file and the
// environment, in increasing precedence. The provider name is normalised
// but not validated; generator.Resolve does that.
func Load(projectDir string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("max_chars", scanner.DefaultMaxChars)
	v.SetDefault("max_files", scanner.DefaultMaxFiles)
	v.SetDefault("max_lines", scanner.DefaultMaxLines)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, apperr.New(apperr.KindInternal, "bind "+env, err)
		}
	}

	var merged []string
	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath(projectDir)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, apperr.Usage(fmt.Sprintf("invalid config file %s: %v", path, err))
		}
		merged = append(merged, path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, apperr.Usage(fmt.Sprintf("invalid configuration: %v", err))
	}

	timeout, err := ParseTimeout(v.GetString("timeout"))
	if err != nil {
		return Config{}, apperr.Usage(fmt.Sprintf("invalid LLM_TIMEOUT: %v", err))
	}
	cfg.Timeout = timeout
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Files = merged

	if cfg.MaxChars <= 0 || cfg.MaxFiles <= 0 || cfg.MaxLines <= 0 {
		return Config{}, apperr.Usage("max_chars, max_files and max_lines must be positive")
	}
	return cfg, nil
}

// ParseTimeout accepts a Go duration ("90s", "2m") or a plain number of
// seconds. Empty means unset.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if secs <= 0 {
			return 0, errors.New("must be positive")
		}
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("must be positive")
	}
	return d, nil
}

// Settings maps the configuration onto the provider table's input.
func (c Config) Settings() generator.Settings {
	s := generator.Settings{
		Provider: c.Provider,
		Model:    c.Model,
		APIKey:   c.Credentials.For(c.Provider),
		BaseURL:  c.BaseURL,
		Timeout:  c.Timeout,
	}
	if s.BaseURL == "" && c.Provider == "ollama" {
		s.BaseURL = c.OllamaHost
	}
	return s
}

// ScanOptions returns the context builder limits.
func (c Config) ScanOptions() scanner.Options {
	return scanner.Options{
		MaxChars: c.MaxChars,
		MaxFiles: c.MaxFiles,
		MaxLines: c.MaxLines,
	}
}

// View is the printable form of a Config. Credentials are reduced to
// whether they are set.
type View struct {
	Provider   string   `yaml:"provider"`
	Model      string   `yaml:"model,omitempty"`
	BaseURL    string   `yaml:"base_url,omitempty"`
	Timeout    string   `yaml:"timeout,omitempty"`
	MaxChars   int      `yaml:"max_chars"`
	MaxFiles   int      `yaml:"max_files"`
	MaxLines   int      `yaml:"max_lines"`
	OllamaHost string   `yaml:"ollama_host,omitempty"`
	Credential string   `yaml:"credential"`
	Files      []string `yaml:"files,omitempty"`
}

// Redacted returns a View that is safe to print.
func (c Config) Redacted() View {
	v := View{
		Provider:   c.Provider,
		Model:      c.Model,
		BaseURL:    c.BaseURL,
		MaxChars:   c.MaxChars,
		MaxFiles:   c.MaxFiles,
		MaxLines:   c.MaxLines,
		OllamaHost: c.OllamaHost,
		Files:      c.Files,
	}
	if c.Timeout > 0 {
		v.Timeout = c.Timeout.String()
	}

	f, ok := generator.Lookup(c.Provider)
	switch {
	case !ok:
		v.Credential = "unknown provider"
	case f.CredentialEnv == "":
		v.Credential = "not required"
	case c.Credentials.For(c.Provider) != "":
		v.Credential = f.CredentialEnv + " set"
	default:
		v.Credential = f.CredentialEnv + " missing"
	}
	return v
}
