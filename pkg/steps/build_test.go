package steps

import (
	"slices"
	"testing"

	"github.com/shipkit/shipkit/pkg/api"
)

func TestBuildArgs(t *testing.T) {
	step := &buildStep{cfg: api.BuildConfig{
		OutputDir:  "dist",
		Package:    "./cmd/demo",
		VersionVar: "main.version",
	}}

	args := step.buildArgs("dist/demo", "1.2.3")
	want := []string{"build", "-o", "dist/demo", "-ldflags", "-X main.version=1.2.3", "./cmd/demo"}
	if !slices.Equal(args, want) {
		t.Errorf("buildArgs() = %v, want %v", args, want)
	}
}

func TestBuildArgs_NoVersionVar(t *testing.T) {
	step := &buildStep{cfg: api.BuildConfig{OutputDir: "dist"}}

	args := step.buildArgs("dist/demo", "1.2.3")
	want := []string{"build", "-o", "dist/demo", "."}
	if !slices.Equal(args, want) {
		t.Errorf("buildArgs() = %v, want %v", args, want)
	}
}

func TestBinaryName(t *testing.T) {
	tests := []struct {
		name string
		ctx  *Context
		want string
	}{
		{"from module", &Context{RootDir: "/tmp/x", Module: "example.com/org/demo"}, "demo"},
		{"from root dir", &Context{RootDir: "/tmp/project"}, "project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := binaryName(tt.ctx); got != tt.want {
				t.Errorf("binaryName() = %q, want %q", got, tt.want)
			}
		})
	}
}
