package scanner

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

const maxProfileDeps = 5

// Profile is what the root manifests say about a project.
type Profile struct {
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Description    string   `yaml:"description,omitempty"`
	Languages      []string `yaml:"languages,omitempty"`
	InstallCommand string   `yaml:"install_command,omitempty"`
	EntryCommand   string   `yaml:"entry_command,omitempty"`
	Dependencies   []string `yaml:"dependencies,omitempty"`
}

func (p Profile) clone() Profile {
	p.Languages = append([]string(nil), p.Languages...)
	p.Dependencies = append([]string(nil), p.Dependencies...)
	return p
}

// DetectProfile inspects well-known manifests at root. Detectors run in a
// fixed order and a later manifest overrides the project type of an earlier one.
func DetectProfile(root string) Profile {
	p := Profile{Name: filepath.Base(root), Type: "unknown"}
	detectPython(root, &p)
	detectNode(root, &p)
	detectGo(root, &p)
	detectRust(root, &p)
	return p
}

func exists(root, name string) bool {
	_, err := os.Stat(filepath.Join(root, name))
	return err == nil
}

func detectPython(root string, p *Profile) {
	if exists(root, "pyproject.toml") {
		p.Type = "python"
		p.Languages = append(p.Languages, "Python")
		p.InstallCommand = "pip install ."

		var doc struct {
			Project struct {
				Name         string            `toml:"name"`
				Description  string            `toml:"description"`
				Scripts      map[string]string `toml:"scripts"`
				Dependencies []string          `toml:"dependencies"`
			} `toml:"project"`
		}
		md, err := toml.DecodeFile(filepath.Join(root, "pyproject.toml"), &doc)
		if err != nil {
			log.Debug().Err(err).Msg("pyproject.toml unreadable")
		} else {
			if doc.Project.Name != "" {
				p.Name = doc.Project.Name
			}
			p.Description = doc.Project.Description
			// first script in document order
			for _, key := range md.Keys() {
				if len(key) == 3 && key[0] == "project" && key[1] == "scripts" {
					p.EntryCommand = key[2]
					break
				}
			}
			p.Dependencies = nil
			for _, d := range firstN(doc.Project.Dependencies, maxProfileDeps) {
				p.Dependencies = append(p.Dependencies, requirementName(d))
			}
		}
	}

	if exists(root, "requirements.txt") && p.Type == "unknown" {
		p.Type = "python"
		p.Languages = append(p.Languages, "Python")
		p.InstallCommand = "pip install -r requirements.txt"
	}
}

// requirementName strips version specifiers and extras from a PEP 508 string.
func requirementName(req string) string {
	if i := strings.IndexAny(req, "<>=!~;[ ("); i >= 0 {
		req = req[:i]
	}
	return strings.TrimSpace(req)
}

func detectNode(root string, p *Profile) {
	if exists(root, "package.json") {
		p.Type = "node"
		p.Languages = append(p.Languages, "JavaScript")
		p.InstallCommand = "npm install"

		var pkg struct {
			Name         string            `json:"name"`
			Description  string            `json:"description"`
			Scripts      map[string]string `json:"scripts"`
			Dependencies map[string]string `json:"dependencies"`
		}
		data, err := os.ReadFile(filepath.Join(root, "package.json"))
		if err == nil {
			err = json.Unmarshal(data, &pkg)
		}
		if err != nil {
			log.Debug().Err(err).Msg("package.json unreadable")
		} else {
			if pkg.Name != "" {
				p.Name = pkg.Name
			}
			p.Description = pkg.Description
			if _, ok := pkg.Scripts["start"]; ok {
				p.EntryCommand = "npm start"
			} else if _, ok := pkg.Scripts["dev"]; ok {
				p.EntryCommand = "npm run dev"
			}
			deps := make([]string, 0, len(pkg.Dependencies))
			for name := range pkg.Dependencies {
				deps = append(deps, name)
			}
			sort.Strings(deps)
			p.Dependencies = firstN(deps, maxProfileDeps)
		}
	}

	if exists(root, "tsconfig.json") && !contains(p.Languages, "TypeScript") {
		p.Languages = append(p.Languages, "TypeScript")
	}
}

func detectGo(root string, p *Profile) {
	if !exists(root, "go.mod") {
		return
	}
	p.Type = "go"
	p.Languages = append(p.Languages, "Go")
	p.InstallCommand = "go install"
	p.EntryCommand = "go run ."

	name := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(name)
	if err != nil {
		log.Debug().Err(err).Msg("go.mod unreadable")
		return
	}
	f, err := modfile.ParseLax(name, data, nil)
	if err != nil || f.Module == nil {
		log.Debug().Err(err).Msg("go.mod unparsable")
		return
	}
	prefix, _, ok := module.SplitPathVersion(f.Module.Mod.Path)
	if !ok {
		prefix = f.Module.Mod.Path
	}
	p.Name = path.Base(prefix)

	var deps []string
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		deps = append(deps, r.Mod.Path)
	}
	p.Dependencies = firstN(deps, maxProfileDeps)
}

func detectRust(root string, p *Profile) {
	if !exists(root, "Cargo.toml") {
		return
	}
	p.Type = "rust"
	p.Languages = append(p.Languages, "Rust")
	p.InstallCommand = "cargo install --path ."
	p.EntryCommand = "cargo run"

	var doc struct {
		Package struct {
			Name        string `toml:"name"`
			Description string `toml:"description"`
		} `toml:"package"`
	}
	if _, err := toml.DecodeFile(filepath.Join(root, "Cargo.toml"), &doc); err != nil {
		log.Debug().Err(err).Msg("Cargo.toml unreadable")
		return
	}
	if doc.Package.Name != "" {
		p.Name = doc.Package.Name
	}
	p.Description = doc.Package.Description
}

func firstN(xs []string, n int) []string {
	if len(xs) > n {
		xs = xs[:n]
	}
	return append([]string(nil), xs...)
}

func contains(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}
