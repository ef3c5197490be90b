package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/shipkit/shipkit/pkg/api"
)

type readmeStep struct {
	cfg api.ReadmeConfig
}

// NewReadmeStep creates a step that regenerates the README from a template,
// so the README is written once as a template and stays in sync with the
// project version and module path.
func NewReadmeStep(cfg api.ReadmeConfig) Step {
	return &readmeStep{cfg: cfg}
}

func (s *readmeStep) Name() string { return "readme" }

func (s *readmeStep) Run(ctx *Context) error {
	tmplPath := filepath.Join(ctx.RootDir, s.cfg.Template)

	content, err := os.ReadFile(tmplPath)
	if err != nil {
		return fmt.Errorf("reading readme template: %w", err)
	}

	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(sprig.FuncMap()).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing readme template: %w", err)
	}

	data := map[string]any{
		"Name":    filepath.Base(ctx.RootDir),
		"Module":  ctx.Module,
		"Version": ctx.Version,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing readme template: %w", err)
	}

	outPath := filepath.Join(ctx.RootDir, s.cfg.Output)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing readme: %w", err)
	}

	slog.Info("readme generated", "step", s.Name(), "output", s.cfg.Output)

	if s.cfg.GitAdd == nil || *s.cfg.GitAdd {
		if _, err := runCommand(ctx.RootDir, "git", "add", s.cfg.Output); err != nil {
			slog.Warn("failed to stage readme", "step", s.Name(), "error", err)
		}
	}

	return nil
}
