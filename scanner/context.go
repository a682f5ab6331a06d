package scanner

import (
	"strings"
	"unicode/utf8"
)

// Entry is one file excerpt in the context.
type Entry struct {
	Path    string
	Excerpt string
}

func (e Entry) Render() string {
	return entryHeader(e.Path) + e.Excerpt + "\n"
}

func entryHeader(path string) string {
	return "--- " + path + " ---\n"
}

// ProjectContext is the size-bounded view of a project handed to a provider.
// It is immutable once Build returns.
type ProjectContext struct {
	root    string
	profile Profile
	files   []string
	entries []Entry
	total   int
}

func (pc ProjectContext) Root() string { return pc.root }

func (pc ProjectContext) Profile() Profile { return pc.profile.clone() }

// Files lists every selected candidate path, including ones whose excerpt did
// not fit the budget.
func (pc ProjectContext) Files() []string {
	return append([]string(nil), pc.files...)
}

func (pc ProjectContext) Entries() []Entry {
	return append([]Entry(nil), pc.entries...)
}

func (pc ProjectContext) Len() int { return len(pc.entries) }

// TotalChars is the rune length of Blob.
func (pc ProjectContext) TotalChars() int { return pc.total }

// Blob renders the entries in order.
func (pc ProjectContext) Blob() string {
	var sb strings.Builder
	for _, e := range pc.entries {
		sb.WriteString(e.Render())
	}
	return sb.String()
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// truncateRunes cuts s to at most n runes, preferring the last line break.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runeLen(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if n == 0 {
			cut = i
			break
		}
		n--
	}
	out := s[:cut]
	if idx := strings.LastIndexByte(out, '\n'); idx > 0 {
		out = out[:idx]
	}
	return out
}
