// Package scaffold creates a new project directory from the embedded
// project-starter templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

//go:embed all:templates
var templatesFS embed.FS

const templatesRoot = "templates"

// Data feeds the project-starter templates.
type Data struct {
	Name   string
	Module string
	Author string
	Year   int
}

// Create renders the project-starter tree into dir. dir may not exist yet or
// must be empty; anything else is refused so an existing project is never
// overwritten.
//
// Template file names use two conventions: a trailing .tmpl is stripped, and
// a leading underscore becomes a dot (embed has no dotfiles, git tooling
// mangles them).
func Create(dir string, data Data) error {
	if err := ensureEmpty(dir); err != nil {
		return err
	}

	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.Name == "" {
		data.Name = filepath.Base(dir)
	}
	if data.Module == "" {
		data.Module = data.Name
	}

	err := fs.WalkDir(templatesFS, templatesRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking templates: %w", err)
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(templatesRoot, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}

		return renderFile(dir, rel, path, data)
	})
	if err != nil {
		return err
	}

	slog.Info("project created", "dir", dir, "name", data.Name, "module", data.Module)
	return nil
}

func renderFile(dir, rel, src string, data Data) error {
	content, err := templatesFS.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", src, err)
	}

	tmpl, err := template.New(filepath.Base(src)).Funcs(sprig.FuncMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", src, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template %s: %w", src, err)
	}

	target := filepath.Join(dir, targetName(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", target, err)
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	slog.Debug("file rendered", "file", targetName(rel))
	return nil
}

// targetName maps a template path to its output path.
func targetName(rel string) string {
	rel = strings.TrimSuffix(rel, ".tmpl")
	base := filepath.Base(rel)
	if strings.HasPrefix(base, "_") {
		base = "." + base[1:]
	}
	return filepath.Join(filepath.Dir(rel), base)
}

func ensureEmpty(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o750)
	}
	if err != nil {
		return fmt.Errorf("checking target directory: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("target directory %s is not empty", dir)
	}
	return nil
}
