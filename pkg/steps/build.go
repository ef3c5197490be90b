package steps

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shipkit/shipkit/pkg/api"
)

type buildStep struct {
	cfg api.BuildConfig
}

// NewBuildStep creates a step that compiles release binaries into the output
// directory, one per configured GOOS/GOARCH target. The output directory is
// recreated from scratch so stale artifacts never ship.
func NewBuildStep(cfg api.BuildConfig) Step {
	return &buildStep{cfg: cfg}
}

func (s *buildStep) Name() string { return "build" }

func (s *buildStep) Run(ctx *Context) error {
	outDir := filepath.Join(ctx.RootDir, s.cfg.OutputDir)

	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("cleaning output directory: %w", err)
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	name := binaryName(ctx)

	targets := s.cfg.Targets
	if len(targets) == 0 {
		slog.Info("building for host", "step", s.Name(), "output", s.cfg.OutputDir)
		args := s.buildArgs(filepath.Join(s.cfg.OutputDir, name), ctx.Version)
		if _, err := runCommand(ctx.RootDir, "go", args...); err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		return nil
	}

	for _, target := range targets {
		out := fmt.Sprintf("%s_%s_%s", name, target.OS, target.Arch)
		if target.OS == "windows" {
			out += ".exe"
		}

		slog.Info("building", "step", s.Name(), "os", target.OS, "arch", target.Arch, "output", out)

		args := s.buildArgs(filepath.Join(s.cfg.OutputDir, out), ctx.Version)
		env := []string{"GOOS=" + target.OS, "GOARCH=" + target.Arch, "CGO_ENABLED=0"}
		if _, err := runCommandEnv(ctx.RootDir, env, "go", args...); err != nil {
			return fmt.Errorf("build for %s/%s failed: %w", target.OS, target.Arch, err)
		}
	}

	return nil
}

func (s *buildStep) buildArgs(output, version string) []string {
	args := []string{"build", "-o", output}
	if s.cfg.VersionVar != "" && version != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X %s=%s", s.cfg.VersionVar, version))
	}
	pkg := s.cfg.Package
	if pkg == "" {
		pkg = "."
	}
	return append(args, pkg)
}

// binaryName derives the artifact name from the module path, falling back to
// the root directory name.
func binaryName(ctx *Context) string {
	if ctx.Module != "" {
		return filepath.Base(ctx.Module)
	}
	return filepath.Base(ctx.RootDir)
}
