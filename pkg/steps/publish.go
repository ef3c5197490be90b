package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/shipkit/shipkit/pkg/api"
)

type publishStep struct {
	cfg api.PublishConfig

	getenv func(string) string // seam for tests, defaults to os.Getenv
}

// NewPublishStep creates a step that runs the configured publish command.
// Credential env vars are checked again here even though the pipeline gates
// on them up front, so the step stays safe when used standalone.
func NewPublishStep(cfg api.PublishConfig) Step {
	return &publishStep{cfg: cfg, getenv: os.Getenv}
}

func (s *publishStep) Name() string { return "publish" }

func (s *publishStep) Run(ctx *Context) error {
	if err := CheckCredentials(s.cfg.CredentialEnv, s.getenv); err != nil {
		return err
	}

	if len(s.cfg.Command) == 0 {
		return fmt.Errorf("publish command is not configured")
	}

	command, err := renderCommand(s.cfg.Command, ctx)
	if err != nil {
		return err
	}

	slog.Info("publishing", "step", s.Name(), "command", command[0], "version", ctx.Version)

	if _, err := runCommand(ctx.RootDir, command[0], command[1:]...); err != nil {
		return fmt.Errorf("publish command failed: %w", err)
	}
	return nil
}

// renderCommand expands each command element as a template with the run
// context, so commands can reference {{ .Version }}.
func renderCommand(command []string, ctx *Context) ([]string, error) {
	data := map[string]any{
		"Version": ctx.Version,
		"Module":  ctx.Module,
		"Root":    ctx.RootDir,
	}

	rendered := make([]string, 0, len(command))
	for _, element := range command {
		tmpl, err := template.New("publish").Funcs(sprig.FuncMap()).Parse(element)
		if err != nil {
			return nil, fmt.Errorf("parsing publish command element %q: %w", element, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing publish command element %q: %w", element, err)
		}
		rendered = append(rendered, buf.String())
	}
	return rendered, nil
}

// CheckCredentials verifies that every named env var is set and non-empty.
func CheckCredentials(names []string, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range names {
		if getenv(name) == "" {
			return fmt.Errorf("credential env var %s is not set", name)
		}
	}
	return nil
}
