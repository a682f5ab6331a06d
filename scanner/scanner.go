// Package scanner walks a project directory and assembles the bounded
// context that is sent to a provider.
package scanner

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"readme_gen/apperr"
)

// Options bounds the context. Zero values fall back to the package defaults.
type Options struct {
	MaxChars     int
	MaxFiles     int
	MaxLines     int
	MaxFileChars int
}

func (o Options) withDefaults() Options {
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.MaxFiles <= 0 {
		o.MaxFiles = DefaultMaxFiles
	}
	if o.MaxLines <= 0 {
		o.MaxLines = DefaultMaxLines
	}
	if o.MaxFileChars <= 0 {
		o.MaxFileChars = DefaultMaxFileChars
	}
	return o
}

// Build scans root and returns its context. The result's TotalChars never
// exceeds opts.MaxChars, and an unchanged tree always yields the same result.
func Build(root string, opts Options) (ProjectContext, error) {
	opts = opts.withDefaults()

	abs, err := filepath.Abs(root)
	if err != nil {
		return ProjectContext{}, apperr.NotFound(root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return ProjectContext{}, apperr.NotFound(root, err)
	}
	if !info.IsDir() {
		return ProjectContext{}, apperr.New(apperr.KindNotFound, root+" is not a directory", nil)
	}

	files := collect(abs)
	if len(files) > opts.MaxFiles {
		files = files[:opts.MaxFiles]
	}

	pc := ProjectContext{
		root:    abs,
		profile: DetectProfile(abs),
		files:   files,
	}

	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(abs, filepath.FromSlash(rel)))
		if err != nil {
			log.Debug().Err(err).Str("file", rel).Msg("skipping unreadable file")
			continue
		}
		if isBinary(data) {
			log.Debug().Str("file", rel).Msg("skipping binary file")
			continue
		}

		e := Entry{Path: rel, Excerpt: excerpt(data, opts.MaxLines, opts.MaxFileChars)}
		cost := runeLen(e.Render())
		remaining := opts.MaxChars - pc.total
		if cost <= remaining {
			pc.entries = append(pc.entries, e)
			pc.total += cost
			continue
		}

		// Last entry: keep what fits, then stop.
		room := remaining - runeLen(entryHeader(rel)) - 1
		if room > 0 {
			e.Excerpt = truncateRunes(e.Excerpt, room)
			pc.entries = append(pc.entries, e)
			pc.total += runeLen(e.Render())
		}
		break
	}

	log.Debug().
		Str("path", abs).
		Int("candidates", len(files)).
		Int("entries", len(pc.entries)).
		Int("chars", pc.total).
		Msg("context built")
	return pc, nil
}

// collect returns the candidate files under root, sorted by slash path.
func collect(root string) []string {
	ign := LoadIgnore(root)

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if pruneDirs[d.Name()] || ign.Match(rel, true) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !selectable(d.Name()) || ign.Match(rel, false) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxFileBytes {
			return nil
		}
		files = append(files, rel)
		return nil
	})

	sort.Strings(files)
	return files
}

func selectable(name string) bool {
	low := strings.ToLower(name)
	if strings.HasPrefix(low, ".env") || strings.HasSuffix(low, ".min.js") {
		return false
	}
	if excludeNames[low] {
		return false
	}
	if manifests[low] {
		return true
	}
	ext := filepath.Ext(low)
	if excludeExts[ext] {
		return false
	}
	return allowedExts[ext]
}

func isBinary(data []byte) bool {
	if len(data) > sniffBytes {
		data = data[:sniffBytes]
	}
	return bytes.IndexByte(data, 0) >= 0
}

// excerpt keeps the first maxLines lines, capped at maxChars runes.
func excerpt(data []byte, maxLines, maxChars int) string {
	s := strings.ToValidUTF8(string(data), "�")
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.SplitN(s, "\n", maxLines+1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	s = strings.TrimRight(strings.Join(lines, "\n"), "\n")
	return truncateRunes(s, maxChars)
}
