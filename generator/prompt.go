package generator

import (
	"fmt"
	"strings"

	"readme_gen/scanner"
)

const maxPromptFiles = 30

// Prompt is the message pair sent to a provider.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = "You write README files for software projects. Output raw markdown only, with no code fences around it and no commentary."

// BuildPrompt fills the README instructions with the project's profile, file
// list and context blob.
func BuildPrompt(pc scanner.ProjectContext) Prompt {
	p := pc.Profile()

	var files strings.Builder
	for i, f := range pc.Files() {
		if i == maxPromptFiles {
			break
		}
		files.WriteString(fmt.Sprintf("  - %s\n", f))
	}

	deps := strings.Join(p.Dependencies, ", ")
	if deps == "" {
		deps = "none detected"
	}
	langs := strings.Join(p.Languages, ", ")
	if langs == "" {
		langs = "unknown"
	}

	var sb strings.Builder
	sb.WriteString("Generate a README.md for this project.\n\n")
	sb.WriteString("PROJECT INFO:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("- Type: %s\n", p.Type))
	sb.WriteString(fmt.Sprintf("- Description: %s\n", orDefault(p.Description, "No description")))
	sb.WriteString(fmt.Sprintf("- Languages: %s\n", langs))
	sb.WriteString(fmt.Sprintf("- Install: %s\n", orDefault(p.InstallCommand, "not detected")))
	sb.WriteString(fmt.Sprintf("- Run: %s\n", orDefault(p.EntryCommand, "not detected")))
	sb.WriteString(fmt.Sprintf("- Key dependencies: %s\n\n", deps))

	sb.WriteString("FILES:\n")
	sb.WriteString(files.String())
	sb.WriteString("\n")

	if pc.Len() > 0 {
		sb.WriteString("SOURCE EXCERPTS:\n")
		sb.WriteString(pc.Blob())
		sb.WriteString("\n")
	}

	sb.WriteString(`REQUIREMENTS:
1. Title format: "# [project-name] - [verb] [noun] in [metric]" (e.g., "Generate README in 60s")
2. First paragraph: State the problem this solves (2-3 sentences max)
3. Quick Start: EXACTLY 3 steps with code blocks
4. Features: 3-5 bullet points, each one line
5. License: MIT
6. No walls of text. Be concise.

OUTPUT: Raw markdown only, no code fences around it.`)

	return Prompt{System: systemPrompt, User: sb.String()}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
