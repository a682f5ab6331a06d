package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"readme_gen/apperr"
)

const (
	maxResponseBytes = 4 << 20
	maxErrorRunes    = 300
)

// postJSON sends body and returns the raw response of a 2xx reply. Transport
// errors are returned unwrapped so the caller can tell timeouts apart.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, apperr.Provider(provider, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperr.Provider(provider, fmt.Sprintf("status %d", resp.StatusCode), errors.New(errorMessage(raw)))
	}
	return raw, nil
}

// errorMessage digs the human-readable part out of an error body.
func errorMessage(raw []byte) string {
	if msg := gjson.GetBytes(raw, "error.message"); msg.Exists() && msg.String() != "" {
		return msg.String()
	}
	if msg := gjson.GetBytes(raw, "error"); msg.Type == gjson.String {
		return msg.String()
	}
	s := strings.TrimSpace(strings.ToValidUTF8(string(raw), "\uFFFD"))
	if r := []rune(s); len(r) > maxErrorRunes {
		s = string(r[:maxErrorRunes]) + "..."
	}
	if s == "" {
		s = "empty body"
	}
	return s
}
