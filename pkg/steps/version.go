package steps

import (
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/shipkit/shipkit/pkg/api"
	"github.com/shipkit/shipkit/pkg/paths"
)

type versionStep struct {
	cfg api.VersionConfig

	file     string
	previous string
}

// NewVersionStep creates a step that bumps the project version in place.
func NewVersionStep(cfg api.VersionConfig) Step {
	return &versionStep{cfg: cfg}
}

func (s *versionStep) Name() string { return "version" }

func (s *versionStep) Run(ctx *Context) error {
	s.file = s.cfg.File
	if s.file == "" {
		s.file = ctx.VersionFile
	}
	if s.file == "" {
		return fmt.Errorf("no VERSION file or Version assignment found; set version.file")
	}

	current, err := paths.ReadVersion(s.file)
	if err != nil {
		return err
	}

	next, err := nextVersion(current, s.cfg.Bump)
	if err != nil {
		return err
	}

	if err := paths.WriteVersion(s.file, next); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}

	s.previous = current
	ctx.Version = next

	slog.Info("version bumped", "step", s.Name(), "file", s.file, "from", current, "to", next)
	return nil
}

// Rollback restores the version that was in place before the bump. Mirrors
// the pipeline contract: nothing half-released keeps a new version number.
func (s *versionStep) Rollback(ctx *Context) error {
	if s.previous == "" {
		return nil
	}
	if err := paths.WriteVersion(s.file, s.previous); err != nil {
		return fmt.Errorf("restoring version %s: %w", s.previous, err)
	}
	ctx.Version = s.previous
	slog.Info("version restored", "step", s.Name(), "version", s.previous)
	return nil
}

func nextVersion(current, bump string) (string, error) {
	v, err := semver.StrictNewVersion(current)
	if err != nil {
		return "", fmt.Errorf("current version %q is not semver: %w", current, err)
	}

	switch bump {
	case api.BumpPatch:
		next := v.IncPatch()
		return next.String(), nil
	case api.BumpMinor:
		next := v.IncMinor()
		return next.String(), nil
	case api.BumpMajor:
		next := v.IncMajor()
		return next.String(), nil
	case api.BumpNone, "":
		return current, nil
	default:
		if _, err := semver.StrictNewVersion(bump); err != nil {
			return "", fmt.Errorf("bump %q is not a valid version: %w", bump, err)
		}
		return bump, nil
	}
}
