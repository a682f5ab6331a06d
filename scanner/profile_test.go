package scanner

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDetectPythonProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "pyproject.toml", `
[project]
name = "test-project"
description = "A test project"
dependencies = ["click>=8.0", "rich>=13.0", "httpx[http2]==0.27"]

[project.scripts]
testcli = "test:main"
other = "test:other"
`)

	p := DetectProfile(dir)

	if p.Type != "python" {
		t.Errorf("Type = %q, want python", p.Type)
	}
	if p.Name != "test-project" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Description != "A test project" {
		t.Errorf("Description = %q", p.Description)
	}
	if p.EntryCommand != "testcli" {
		t.Errorf("EntryCommand = %q, want testcli", p.EntryCommand)
	}
	want := []string{"click", "rich", "httpx"}
	if !reflect.DeepEqual(p.Dependencies, want) {
		t.Errorf("Dependencies = %v, want %v", p.Dependencies, want)
	}
}

func TestDetectRequirementsFallback(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "requirements.txt", "flask\n")

	p := DetectProfile(dir)
	if p.Type != "python" || p.InstallCommand != "pip install -r requirements.txt" {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.Name != filepath.Base(dir) {
		t.Errorf("Name = %q, want directory name", p.Name)
	}
}

func TestDetectNodeProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "package.json", `{
  "name": "my-node-app",
  "description": "A Node.js app",
  "scripts": {"start": "node index.js"},
  "dependencies": {"express": "^4.0", "cors": "^2.8"}
}`)
	writeFile(t, dir, "tsconfig.json", "{}")

	p := DetectProfile(dir)

	if p.Type != "node" {
		t.Errorf("Type = %q, want node", p.Type)
	}
	if p.Name != "my-node-app" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.EntryCommand != "npm start" {
		t.Errorf("EntryCommand = %q", p.EntryCommand)
	}
	if !reflect.DeepEqual(p.Dependencies, []string{"cors", "express"}) {
		t.Errorf("Dependencies = %v", p.Dependencies)
	}
	if !reflect.DeepEqual(p.Languages, []string{"JavaScript", "TypeScript"}) {
		t.Errorf("Languages = %v", p.Languages)
	}
}

func TestDetectGoProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", `module github.com/acme/widget/v2

go 1.22

require (
	github.com/rs/zerolog v1.32.0
	golang.org/x/sys v0.15.0 // indirect
)
`)

	p := DetectProfile(dir)

	if p.Type != "go" || p.EntryCommand != "go run ." {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.Name != "widget" {
		t.Errorf("Name = %q, want widget", p.Name)
	}
	if !reflect.DeepEqual(p.Dependencies, []string{"github.com/rs/zerolog"}) {
		t.Errorf("Dependencies = %v", p.Dependencies)
	}
}

func TestDetectRustProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "Cargo.toml", `[package]
name = "ferris"
description = "crab tool"
`)

	p := DetectProfile(dir)
	if p.Type != "rust" || p.Name != "ferris" || p.Description != "crab tool" {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestDetectUnknownProject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	p := DetectProfile(dir)
	if p.Type != "unknown" || p.Name != filepath.Base(dir) || len(p.Languages) != 0 {
		t.Errorf("unexpected profile %+v", p)
	}
}

func TestDetectBrokenManifestIsNotFatal(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "package.json", "{not json")

	p := DetectProfile(dir)
	if p.Type != "node" || p.Name != filepath.Base(dir) {
		t.Errorf("unexpected profile %+v", p)
	}
}
