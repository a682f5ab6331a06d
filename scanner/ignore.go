package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	ignore "github.com/sabhiram/go-gitignore"
)

// Ignore is a project's compiled .gitignore. The zero value matches nothing.
type Ignore struct {
	gi *ignore.GitIgnore
}

// CompileIgnore builds an Ignore from .gitignore lines. Anchoring, "**" and
// "!" negation follow git.
func CompileIgnore(lines ...string) Ignore {
	return Ignore{gi: ignore.CompileIgnoreLines(lines...)}
}

// LoadIgnore reads root/.gitignore. A missing or unreadable file yields an
// Ignore that matches nothing.
func LoadIgnore(root string) Ignore {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug().Err(err).Msg(".gitignore unreadable")
		}
		return Ignore{}
	}
	return CompileIgnore(strings.Split(string(data), "\n")...)
}

// Match reports whether the slash-separated relative path is ignored. dir
// marks directories so that patterns like "build/" apply to them.
func (ig Ignore) Match(rel string, dir bool) bool {
	if ig.gi == nil {
		return false
	}
	if dir {
		rel += "/"
	}
	return ig.gi.MatchesPath(rel)
}
