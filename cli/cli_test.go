package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"readme_gen/generator"
)

var boundEnv = []string{
	"LLM_PROVIDER", "LLM_MODEL", "LLM_TIMEOUT", "LLM_BASE_URL", "OLLAMA_HOST",
	"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GOOGLE_API_KEY", "README_GEN_MAX_CHARS", "DEBUG",
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range boundEnv {
		t.Setenv(env, "")
	}
}

func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.py"), []byte("print('hello')\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, a *app, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a.stdout = &stdout
	a.stderr = &stderr
	code := run(context.Background(), args, "1.2.3", a)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// countingApp wraps the real generator factory and counts how often it runs.
func countingApp(calls *int) *app {
	a := defaultApp()
	a.newGenerator = func(s generator.Settings) (*generator.Generator, error) {
		*calls++
		return generator.New(s)
	}
	return a
}

func mockApp(m *generator.Mock) *app {
	a := defaultApp()
	a.newGenerator = func(s generator.Settings) (*generator.Generator, error) {
		return generator.NewWithProvider(m, s)
	}
	return a
}

func ollamaStub(t *testing.T, hits *atomic.Int32, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_HOST", srv.URL)
}

func TestDryRunNeverCallsProvider(t *testing.T) {
	isolate(t)
	var hits atomic.Int32
	ollamaStub(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":"# should not happen"}`)
	})

	calls := 0
	res := runCLI(t, countingApp(&calls), newProject(t), "--dry-run")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "--- main.py ---\nprint('hello')\n") {
		t.Errorf("dry run did not print the context:\n%s", res.stdout)
	}
	if calls != 0 || hits.Load() != 0 {
		t.Errorf("dry run reached the provider: factory=%d requests=%d", calls, hits.Load())
	}
}

func TestDryRunIgnoresProviderConfiguration(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_PROVIDER", "mistral")

	res := runCLI(t, defaultApp(), newProject(t), "--dry-run")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
}

func TestDryRunHonoursMaxChars(t *testing.T) {
	isolate(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "big.py"), []byte(strings.Repeat("x = 1\n", 200)), 0o644); err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, defaultApp(), root, "--dry-run", "--max-chars", "100")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if n := len([]rune(res.stdout)); n == 0 || n > 100 {
		t.Errorf("dry run printed %d characters, want 1..100", n)
	}
}

func TestGenerateAgainstStubbedOllama(t *testing.T) {
	isolate(t)
	var hits atomic.Int32
	ollamaStub(t, &hits, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"response":"# hello - Greet users in 1s\n\nPrints hello.","done":true}`)
	})

	res := runCLI(t, defaultApp(), newProject(t))
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if res.stdout != "# hello - Greet users in 1s\n\nPrints hello.\n" {
		t.Errorf("stdout = %q", res.stdout)
	}
	if hits.Load() != 1 {
		t.Errorf("expected exactly one request, got %d", hits.Load())
	}
}

func TestOutputFileIsRelativeToProject(t *testing.T) {
	isolate(t)
	root := newProject(t)

	res := runCLI(t, mockApp(&generator.Mock{Reply: "# Tool"}), root, "-o", "README.md")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if res.stdout != "" {
		t.Errorf("stdout should be empty, got %q", res.stdout)
	}
	got, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		t.Fatalf("README not written: %v", err)
	}
	if string(got) != "# Tool\n" {
		t.Errorf("README = %q", got)
	}
}

func TestHTMLFormat(t *testing.T) {
	isolate(t)

	res := runCLI(t, mockApp(&generator.Mock{Reply: "# Tool\n\nText"}), newProject(t), "--format", "html")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "<h1") || !strings.Contains(res.stdout, "<p>Text</p>") {
		t.Errorf("stdout = %q", res.stdout)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		args     func(root string) []string
		wantCode int
		wantKind string
	}{
		{
			name:     "missing path",
			args:     func(root string) []string { return []string{filepath.Join(root, "nope")} },
			wantCode: 3,
			wantKind: "not_found",
		},
		{
			name:     "unsupported provider",
			env:      map[string]string{"LLM_PROVIDER": "mistral"},
			args:     func(root string) []string { return []string{root} },
			wantCode: 4,
			wantKind: "unsupported_provider",
		},
		{
			name:     "missing credential",
			env:      map[string]string{"LLM_PROVIDER": "openai"},
			args:     func(root string) []string { return []string{root} },
			wantCode: 5,
			wantKind: "missing_credential",
		},
		{
			name:     "bad format",
			args:     func(root string) []string { return []string{root, "--format", "pdf"} },
			wantCode: 2,
			wantKind: "usage",
		},
		{
			name:     "unknown flag",
			args:     func(root string) []string { return []string{root, "--bogus"} },
			wantCode: 2,
			wantKind: "usage",
		},
		{
			name:     "too many paths",
			args:     func(root string) []string { return []string{root, root} },
			wantCode: 2,
			wantKind: "usage",
		},
		{
			name:     "unwritable output",
			env:      map[string]string{"LLM_PROVIDER": "anthropic", "ANTHROPIC_API_KEY": "k"},
			args:     func(root string) []string { return []string{root, "-o", filepath.Join(root, "no", "such", "dir", "README.md")} },
			wantCode: 8,
			wantKind: "io_write",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			calls := 0
			a := countingApp(&calls)
			if tt.wantKind == "io_write" {
				a = mockApp(&generator.Mock{Reply: "# x"})
			}

			res := runCLI(t, a, tt.args(newProject(t))...)
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", res.code, tt.wantCode, res.stderr)
			}
			if !strings.Contains(res.stderr, "Error ("+tt.wantKind+")") {
				t.Errorf("stderr missing kind %q: %s", tt.wantKind, res.stderr)
			}
			if tt.wantKind == "not_found" && calls != 0 {
				t.Error("generator was constructed for a missing path")
			}
		})
	}
}

func TestProviderFailures(t *testing.T) {
	tests := []struct {
		name     string
		timeout  string
		handler  http.HandlerFunc
		wantCode int
	}{
		{
			name:    "timeout",
			timeout: "0.05",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			wantCode: 6,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = io.WriteString(w, `{"error":"out of memory"}`)
			},
			wantCode: 7,
		},
		{
			name: "empty reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"response":"   "}`)
			},
			wantCode: 7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			var hits atomic.Int32
			ollamaStub(t, &hits, tt.handler)
			if tt.timeout != "" {
				t.Setenv("LLM_TIMEOUT", tt.timeout)
			}

			res := runCLI(t, defaultApp(), newProject(t))
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", res.code, tt.wantCode, res.stderr)
			}
			if res.stdout != "" {
				t.Errorf("failed run wrote to stdout: %q", res.stdout)
			}
			if hits.Load() != 1 {
				t.Errorf("expected exactly one request, got %d", hits.Load())
			}
		})
	}
}

func TestConfigShowRedactsCredential(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-secret-value")

	res := runCLI(t, defaultApp(), "config", "show", t.TempDir())
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	if !strings.Contains(res.stdout, "provider: anthropic") || !strings.Contains(res.stdout, "ANTHROPIC_API_KEY set") {
		t.Errorf("unexpected output:\n%s", res.stdout)
	}
	if strings.Contains(res.stdout+res.stderr, "sk-ant-secret-value") {
		t.Error("credential leaked")
	}
}

func TestProvidersCommand(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_API_KEY", "g")

	res := runCLI(t, defaultApp(), "providers")
	if res.code != 0 {
		t.Fatalf("exit code %d, stderr: %s", res.code, res.stderr)
	}
	for _, want := range []string{"anthropic *", "openai", "google", "ollama", "GOOGLE_API_KEY set", "OPENAI_API_KEY missing", "not required"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("providers output missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	res := runCLI(t, defaultApp(), "--version")
	if res.code != 0 || !strings.Contains(res.stdout, "1.2.3") {
		t.Errorf("version output %q (code %d)", res.stdout, res.code)
	}
}
