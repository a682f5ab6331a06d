package generator

import (
	"bytes"
	"errors"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var errEmptyOutput = errors.New("model returned empty markdown")

// PostProcess trims the model output and removes a fence wrapped around the
// whole document. It returns the markdown and its first H1, if any.
func PostProcess(raw string) (string, string, error) {
	md := stripFences(raw)
	if md == "" {
		return "", "", errEmptyOutput
	}
	return md, extractTitle(md), nil
}

func stripFences(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 2 {
		return strings.TrimSpace(s)
	}
	first := strings.TrimSpace(lines[0])
	last := strings.TrimSpace(lines[len(lines)-1])
	// bare or markdown-tagged fences only
	switch first {
	case "```", "```markdown", "```md", "~~~", "~~~markdown":
		if last == first[:3] {
			lines = lines[1 : len(lines)-1]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractTitle(md string) string {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(nodeText(h, src))
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return title
}

func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(nodeText(c, src))
		}
	}
	return buf.String()
}
