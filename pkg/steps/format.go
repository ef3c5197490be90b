package steps

import (
	"fmt"
	"log/slog"

	"github.com/shipkit/shipkit/pkg/api"
)

type formatStep struct {
	cfg api.FormatConfig
}

// NewFormatStep creates a step that reformats the source tree.
func NewFormatStep(cfg api.FormatConfig) Step {
	return &formatStep{cfg: cfg}
}

func (s *formatStep) Name() string { return "format" }

func (s *formatStep) Run(ctx *Context) error {
	binary := s.cfg.Binary
	if binary == "" {
		binary = "gofmt"
	}
	args := s.cfg.Args
	if len(args) == 0 {
		args = []string{"-l", "-w", "."}
	}

	slog.Info("running formatter", "step", s.Name(), "binary", binary)

	if _, err := runCommand(ctx.RootDir, binary, args...); err != nil {
		return fmt.Errorf("formatting failed: %w", err)
	}
	return nil
}
