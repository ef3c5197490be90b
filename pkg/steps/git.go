package steps

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/shipkit/shipkit/pkg/api"
)

type gitStep struct {
	cfg api.GitConfig

	tag string
}

// NewGitStep creates a step that stages all changes, commits, optionally
// creates an annotated tag and pushes. When the push fails the created tag
// is deleted again so a rerun starts clean.
func NewGitStep(cfg api.GitConfig) Step {
	return &gitStep{cfg: cfg}
}

func (s *gitStep) Name() string { return "git" }

func (s *gitStep) Run(ctx *Context) error {
	tag, err := renderTag(s.cfg.Tag, ctx.Version)
	if err != nil {
		return err
	}

	if _, err := runCommand(ctx.RootDir, "git", "add", "-A"); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	if _, err := runCommand(ctx.RootDir, "git", "commit", "-m", s.cfg.CommitMessage); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	if tag != "" {
		tagMessage := s.cfg.TagMessage
		if tagMessage == "" {
			tagMessage = api.DefaultTagMessage
		}
		if _, err := runCommand(ctx.RootDir, "git", "tag", "-a", tag, "-m", tagMessage); err != nil {
			return fmt.Errorf("creating tag %s: %w", tag, err)
		}
		s.tag = tag
	}

	remote := s.cfg.Remote
	if remote == "" {
		remote = "origin"
	}

	pushArgs := []string{"push", remote}
	if s.tag != "" {
		pushArgs = append(pushArgs, "--follow-tags")
	}

	slog.Info("pushing", "step", s.Name(), "remote", remote, "tag", s.tag)

	if _, err := runCommand(ctx.RootDir, "git", pushArgs...); err != nil {
		s.deleteTag(ctx)
		return fmt.Errorf("pushing to %s: %w", remote, err)
	}

	return nil
}

// Rollback removes the tag when a later step fails before anything depending
// on the tag has been published. The commit itself stays; it is already on
// the remote.
func (s *gitStep) Rollback(ctx *Context) error {
	s.deleteTag(ctx)
	return nil
}

func (s *gitStep) deleteTag(ctx *Context) {
	if s.tag == "" {
		return
	}
	if _, err := runCommand(ctx.RootDir, "git", "tag", "-d", s.tag); err != nil {
		slog.Warn("failed to delete tag", "step", s.Name(), "tag", s.tag, "error", err)
		return
	}
	slog.Info("tag deleted", "step", s.Name(), "tag", s.tag)
	s.tag = ""
}

// renderTag expands the tag template with the current version. An empty
// template or empty result disables tagging.
func renderTag(tagTemplate, version string) (string, error) {
	if tagTemplate == "" {
		return "", nil
	}

	tmpl, err := template.New("tag").Funcs(sprig.FuncMap()).Parse(tagTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing tag template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"Version": version}); err != nil {
		return "", fmt.Errorf("executing tag template: %w", err)
	}

	return strings.TrimSpace(buf.String()), nil
}

// CurrentBranch returns the checked-out branch name of the repository at dir.
func CurrentBranch(dir string) (string, error) {
	out, err := runCommand(dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolving current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
