package api

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	f := filepath.Join(dir, ConfigFilename)
	if err := os.WriteFile(f, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestLoad_OverridesDefaults(t *testing.T) {
	f := writeConfig(t, `
version:
  enabled: true
  bump: minor
git:
  enabled: true
  commitMessage: release
  allowedBranches:
    - release
publish:
  enabled: true
  command: ["goreleaser", "release"]
`)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Version.Bump != BumpMinor {
		t.Errorf("expected bump minor, got %q", cfg.Version.Bump)
	}
	if cfg.Git.CommitMessage != "release" {
		t.Errorf("expected commit message 'release', got %q", cfg.Git.CommitMessage)
	}
	if len(cfg.Git.AllowedBranches) != 1 || cfg.Git.AllowedBranches[0] != "release" {
		t.Errorf("expected allowedBranches [release], got %v", cfg.Git.AllowedBranches)
	}
	if !filepath.IsAbs(cfg.FilePath) {
		t.Errorf("expected absolute FilePath, got %q", cfg.FilePath)
	}
}

func TestLoad_FillsDefaultsForOmittedOptions(t *testing.T) {
	f := writeConfig(t, `
test:
  enabled: false
`)

	cfg, err := Load(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Test.Enabled {
		t.Error("test step should be disabled")
	}
	if cfg.Version.Bump != BumpPatch {
		t.Errorf("expected default bump patch, got %q", cfg.Version.Bump)
	}
	if cfg.Git.CommitMessage != DefaultCommitMessage {
		t.Errorf("expected default commit message, got %q", cfg.Git.CommitMessage)
	}
	if cfg.Git.Remote != "origin" {
		t.Errorf("expected default remote origin, got %q", cfg.Git.Remote)
	}
	if cfg.Build.OutputDir != "dist" {
		t.Errorf("expected default output dir dist, got %q", cfg.Build.OutputDir)
	}
	if len(cfg.Publish.CredentialEnv) != 1 || cfg.Publish.CredentialEnv[0] != DefaultCredentialEnv {
		t.Errorf("expected default credential env, got %v", cfg.Publish.CredentialEnv)
	}
}

func TestLoad_NotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	f := writeConfig(t, "git: [not a mapping")
	if _, err := Load(f); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	f := writeConfig(t, `
version:
  bump: sideways
`)
	if _, err := Load(f); err == nil {
		t.Fatal("expected validation error for unknown bump")
	}
}
