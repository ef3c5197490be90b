// Package paths infers the locations of conventional project files so the
// pipeline works without configuration: the project root, the file holding
// the version, the docs directory and the README.
package paths

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/mod/modfile"
)

// Project holds the inferred locations. Optional entries that could not be
// found are empty; steps that need them report their own error.
type Project struct {
	Root        string
	Module      string
	VersionFile string
	DocsDir     string
	Readme      string
}

// defaultExcludes are subtrees never searched during inference.
var defaultExcludes = []string{
	".git",
	"vendor",
	"dist",
	"node_modules",
	"testdata",
}

// Detect walks up from start to find the project root and infers the
// remaining paths below it.
func Detect(start string) (*Project, error) {
	root, err := FindRoot(start)
	if err != nil {
		return nil, err
	}

	p := &Project{Root: root}

	if module, err := ModulePath(root); err == nil {
		p.Module = module
	}

	p.VersionFile = findVersionFile(root)

	if docs := filepath.Join(root, "docs"); isDir(docs) {
		p.DocsDir = docs
	}
	if readme := filepath.Join(root, "README.md"); isFile(readme) {
		p.Readme = readme
	}

	return p, nil
}

// FindRoot walks up from start looking for a directory containing go.mod,
// falling back to the first directory containing .git.
func FindRoot(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start path: %w", err)
	}

	gitRoot := ""
	for dir := abs; ; {
		if isFile(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		if gitRoot == "" && isDir(filepath.Join(dir, ".git")) {
			gitRoot = dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if gitRoot != "" {
		return gitRoot, nil
	}
	return "", fmt.Errorf("no go.mod or .git found above %s", abs)
}

// ModulePath reads the module path from the go.mod at root.
func ModulePath(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}
	module := modfile.ModulePath(data)
	if module == "" {
		return "", fmt.Errorf("no module path in %s", filepath.Join(root, "go.mod"))
	}
	return module, nil
}

// FindFile walks root for the first file named name, skipping the default
// exclude globs. Returns "" when nothing matches.
func FindFile(root, name string) string {
	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtrees are just skipped
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if excluded(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// findVersionFile prefers a VERSION file at the root, then the first Go
// source file containing a version assignment.
func findVersionFile(root string) string {
	if v := filepath.Join(root, "VERSION"); isFile(v) {
		return v
	}

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if excluded(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".go" {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		if _, ok := ExtractVersion(path, data); ok {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func excluded(rel string, isDir bool) bool {
	if rel == "." {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, name := range defaultExcludes {
		if isDir && filepath.Base(rel) == name {
			return true
		}
		if ok, _ := doublestar.Match(name+"/**", rel); ok {
			return true
		}
	}
	return false
}

func isDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
