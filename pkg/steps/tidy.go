package steps

import (
	"fmt"
	"log/slog"

	"github.com/shipkit/shipkit/pkg/api"
)

type tidyStep struct {
	cfg api.TidyConfig
}

// NewTidyStep creates a step that syncs module dependencies.
func NewTidyStep(cfg api.TidyConfig) Step {
	return &tidyStep{cfg: cfg}
}

func (s *tidyStep) Name() string { return "tidy" }

func (s *tidyStep) Run(ctx *Context) error {
	if s.cfg.Update {
		slog.Info("updating dependencies", "step", s.Name())
		if _, err := runCommand(ctx.RootDir, "go", "get", "-u", "./..."); err != nil {
			return fmt.Errorf("updating dependencies failed: %w", err)
		}
	}

	slog.Info("tidying go.mod", "step", s.Name())
	if _, err := runCommand(ctx.RootDir, "go", "mod", "tidy"); err != nil {
		return fmt.Errorf("go mod tidy failed: %w", err)
	}
	return nil
}
