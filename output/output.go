package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"readme_gen/apperr"
)

// Format selects how the generated markdown is written.
type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// ParseFormat accepts "markdown", "md" or "html". Empty means markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return Markdown, nil
	case "html":
		return HTML, nil
	}
	return "", apperr.Usage(fmt.Sprintf("unknown format %q (choose markdown or html)", s))
}

// ResolvePath anchors a relative destination at the project directory.
func ResolvePath(projectDir, dest string) string {
	if dest == "" || filepath.IsAbs(dest) {
		return dest
	}
	return filepath.Join(projectDir, dest)
}

// Write renders text in format and writes it to dest, or to w when dest is
// empty. It returns the path written, or "" for w.
func Write(w io.Writer, text, dest string, format Format) (string, error) {
	body, err := render(text, format)
	if err != nil {
		return "", err
	}

	if dest == "" {
		if _, err := io.WriteString(w, body); err != nil {
			return "", apperr.IOWrite("stdout", err)
		}
		return "", nil
	}

	if err := os.WriteFile(dest, []byte(body), 0o644); err != nil {
		return "", apperr.IOWrite(dest, err)
	}
	return dest, nil
}

func render(text string, format Format) (string, error) {
	switch format {
	case "", Markdown:
		return ensureNewline(text), nil
	case HTML:
		html, err := mdToHTML(text)
		if err != nil {
			return "", apperr.New(apperr.KindInternal, "render html", err)
		}
		return html, nil
	}
	return "", apperr.Usage(fmt.Sprintf("unknown format %q", format))
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

func mdToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ensureNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
