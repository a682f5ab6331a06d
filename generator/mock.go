package generator

import (
	"context"
	"strings"
)

// Mock is an offline Provider for tests. It counts calls and never touches
// the network.
type Mock struct {
	Reply string
	Err   error

	Calls int
	Last  Request
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Complete(_ context.Context, req Request) (string, error) {
	m.Calls++
	m.Last = req
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}

	var sb strings.Builder
	sb.WriteString("# Generated README\n\n")
	sb.WriteString("Placeholder produced without calling a model.\n\n")
	sb.WriteString("## Prompt\n\n")
	sb.WriteString("```\n")
	sb.WriteString(req.Prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
