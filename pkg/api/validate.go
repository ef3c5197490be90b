package api

import (
	"fmt"
	"text/template"

	"github.com/Masterminds/semver/v3"
	"github.com/Masterminds/sprig/v3"
)

var namedBumps = map[string]bool{
	BumpPatch: true,
	BumpMinor: true,
	BumpMajor: true,
	BumpNone:  true,
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validateBump(c.Version.Bump); err != nil {
		return fmt.Errorf("version: %w", err)
	}

	if c.Docs.Enabled && len(c.Docs.Command) == 0 {
		return fmt.Errorf("docs: command is required when docs are enabled")
	}

	if err := validateGit(c.Git); err != nil {
		return fmt.Errorf("git: %w", err)
	}

	if err := validateBuild(c.Build); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	if c.Publish.Enabled && len(c.Publish.Command) == 0 {
		return fmt.Errorf("publish: command is required when publish is enabled")
	}

	return nil
}

func validateBump(bump string) error {
	if namedBumps[bump] {
		return nil
	}
	if _, err := semver.StrictNewVersion(bump); err != nil {
		return fmt.Errorf("bump %q is neither %s/%s/%s/%s nor a version like 1.2.3",
			bump, BumpPatch, BumpMinor, BumpMajor, BumpNone)
	}
	return nil
}

func validateGit(cfg GitConfig) error {
	if cfg.Enabled && cfg.CommitMessage == "" {
		return fmt.Errorf("commitMessage is required")
	}
	for i, branch := range cfg.AllowedBranches {
		if branch == "" {
			return fmt.Errorf("allowedBranches[%d] is empty", i)
		}
	}
	if cfg.Tag != "" {
		if _, err := template.New("tag").Funcs(sprig.FuncMap()).Parse(cfg.Tag); err != nil {
			return fmt.Errorf("parsing tag template: %w", err)
		}
	}
	return nil
}

func validateBuild(cfg BuildConfig) error {
	seen := make(map[string]int)
	for i, t := range cfg.Targets {
		if t.OS == "" || t.Arch == "" {
			return fmt.Errorf("target %d: os and arch are required", i)
		}
		key := t.OS + "/" + t.Arch
		if prev, exists := seen[key]; exists {
			return fmt.Errorf("target %d: duplicate target %s (first defined at target %d)", i, key, prev)
		}
		seen[key] = i
	}
	return nil
}
