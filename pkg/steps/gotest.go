package steps

import (
	"fmt"
	"log/slog"

	"github.com/shipkit/shipkit/pkg/api"
)

type testStep struct {
	cfg api.TestConfig
}

// NewTestStep creates a step that runs the project's tests.
func NewTestStep(cfg api.TestConfig) Step {
	return &testStep{cfg: cfg}
}

func (s *testStep) Name() string { return "test" }

func (s *testStep) args() []string {
	args := []string{"test"}
	if s.cfg.Verbose {
		args = append(args, "-v")
	}
	if s.cfg.Coverage {
		args = append(args, "-cover")
	}
	if s.cfg.Run != "" {
		args = append(args, "-run", s.cfg.Run)
	}
	args = append(args, s.cfg.Args...)

	pkgs := s.cfg.Packages
	if len(pkgs) == 0 {
		pkgs = []string{"./..."}
	}
	return append(args, pkgs...)
}

func (s *testStep) Run(ctx *Context) error {
	slog.Info("running tests", "step", s.Name(), "coverage", s.cfg.Coverage)

	if _, err := runCommand(ctx.RootDir, "go", s.args()...); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	return nil
}
