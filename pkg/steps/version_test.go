package steps

import (
	"path/filepath"
	"testing"

	"github.com/shipkit/shipkit/pkg/api"
	"github.com/shipkit/shipkit/pkg/paths"
)

func TestNextVersion(t *testing.T) {
	tests := []struct {
		current string
		bump    string
		want    string
		wantErr bool
	}{
		{"1.2.3", api.BumpPatch, "1.2.4", false},
		{"1.2.3", api.BumpMinor, "1.3.0", false},
		{"1.2.3", api.BumpMajor, "2.0.0", false},
		{"1.2.3", api.BumpNone, "1.2.3", false},
		{"1.2.3", "4.5.6", "4.5.6", false},
		{"1.2.3", "not-a-version", "", true},
		{"bogus", api.BumpPatch, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.bump, func(t *testing.T) {
			got, err := nextVersion(tt.current, tt.bump)
			if (err != nil) != tt.wantErr {
				t.Fatalf("nextVersion(%q, %q) error = %v, wantErr = %v", tt.current, tt.bump, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("nextVersion(%q, %q) = %q, want %q", tt.current, tt.bump, got, tt.want)
			}
		})
	}
}

func TestVersionStep_Run(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "VERSION", "0.3.1\n")

	step := NewVersionStep(api.VersionConfig{Bump: api.BumpPatch})
	ctx := &Context{RootDir: dir, VersionFile: filepath.Join(dir, "VERSION")}

	if err := step.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ctx.Version != "0.3.2" {
		t.Errorf("expected context version 0.3.2, got %q", ctx.Version)
	}

	version, err := paths.ReadVersion(filepath.Join(dir, "VERSION"))
	if err != nil {
		t.Fatal(err)
	}
	if version != "0.3.2" {
		t.Errorf("expected 0.3.2 in file, got %q", version)
	}
}

func TestVersionStep_Rollback(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "version.go", "package main\n\nconst Version = \"1.0.0\"\n")

	file := filepath.Join(dir, "version.go")
	step := NewVersionStep(api.VersionConfig{Bump: api.BumpMinor, File: file})
	ctx := &Context{RootDir: dir}

	if err := step.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Version != "1.1.0" {
		t.Fatalf("expected 1.1.0, got %q", ctx.Version)
	}

	rb, ok := step.(Rollbacker)
	if !ok {
		t.Fatal("version step must implement Rollbacker")
	}
	if err := rb.Rollback(ctx); err != nil {
		t.Fatalf("unexpected rollback error: %v", err)
	}

	version, err := paths.ReadVersion(file)
	if err != nil {
		t.Fatal(err)
	}
	if version != "1.0.0" {
		t.Errorf("expected restored 1.0.0, got %q", version)
	}
	if ctx.Version != "1.0.0" {
		t.Errorf("expected context version restored, got %q", ctx.Version)
	}
}

func TestVersionStep_NoVersionFile(t *testing.T) {
	step := NewVersionStep(api.VersionConfig{Bump: api.BumpPatch})
	ctx := &Context{RootDir: t.TempDir()}

	if err := step.Run(ctx); err == nil {
		t.Fatal("expected error when no version file is known")
	}
}
