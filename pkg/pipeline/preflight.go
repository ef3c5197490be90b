package pipeline

import (
	"fmt"
	"os"
	"slices"

	"github.com/shipkit/shipkit/pkg/api"
	"github.com/shipkit/shipkit/pkg/steps"
)

// Gate runs the checks that must pass before the first step executes, so a
// run never needs a manual rollback for a failure that was knowable up
// front: the branch gate and the publish credential check.
type Gate struct {
	// Branch returns the checked-out branch for a repository root. Defaults
	// to asking git.
	Branch func(dir string) (string, error)

	// Getenv looks up credential env vars. Defaults to os.Getenv.
	Getenv func(string) string
}

// Check verifies the gates that apply to cfg. It is a no-op when git is
// disabled or has no allowed branches, and when publish is disabled.
func (g Gate) Check(cfg *api.Config, ctx *steps.Context) error {
	branch := g.Branch
	if branch == nil {
		branch = steps.CurrentBranch
	}
	getenv := g.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if cfg.Git.Enabled && len(cfg.Git.AllowedBranches) > 0 {
		current, err := branch(ctx.RootDir)
		if err != nil {
			return err
		}
		if !slices.Contains(cfg.Git.AllowedBranches, current) {
			return fmt.Errorf("branch %q is not in allowedBranches %v; "+
				"add it to git.allowedBranches to run anyway", current, cfg.Git.AllowedBranches)
		}
	}

	if cfg.Publish.Enabled {
		if err := steps.CheckCredentials(cfg.Publish.CredentialEnv, getenv); err != nil {
			return fmt.Errorf("publish is enabled but %w", err)
		}
	}

	return nil
}
