// Package pipeline executes the enabled release steps strictly sequentially
// in their declaration order. Each step depends on filesystem and subprocess
// side effects of the previous one, so there is no concurrency, no retries
// and no reordering.
package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/shipkit/shipkit/pkg/api"
	"github.com/shipkit/shipkit/pkg/steps"
)

// Entry couples a step with its enablement and failure semantics.
type Entry struct {
	Step       steps.Step
	Enabled    bool
	BestEffort bool // failure is logged and recorded but does not halt the run
}

// Plan builds the fixed step order from the configuration. Build and publish
// run after the push and are best-effort: by then everything is committed
// upstream, so their failure is reported but there is nothing left to halt.
func Plan(cfg *api.Config) []Entry {
	return []Entry{
		{Step: steps.NewTidyStep(cfg.Tidy), Enabled: cfg.Tidy.Enabled},
		{Step: steps.NewTestStep(cfg.Test), Enabled: cfg.Test.Enabled},
		{Step: steps.NewFormatStep(cfg.Format), Enabled: cfg.Format.Enabled},
		{Step: steps.NewVersionStep(cfg.Version), Enabled: cfg.Version.Enabled && cfg.Version.Bump != api.BumpNone},
		{Step: steps.NewDocsStep(cfg.Docs), Enabled: cfg.Docs.Enabled},
		{Step: steps.NewReadmeStep(cfg.Readme), Enabled: cfg.Readme.Enabled},
		{Step: steps.NewGitStep(cfg.Git), Enabled: cfg.Git.Enabled},
		{Step: steps.NewBuildStep(cfg.Build), Enabled: cfg.Build.Enabled, BestEffort: true},
		{Step: steps.NewPublishStep(cfg.Publish), Enabled: cfg.Publish.Enabled, BestEffort: true},
	}
}

// Runner executes a planned list of entries.
type Runner struct {
	entries []Entry
}

// New creates a Runner for the given entries.
func New(entries []Entry) *Runner {
	return &Runner{entries: entries}
}

// Run executes the enabled steps in order. A disabled step is recorded as
// skipped and never invoked. On a fatal failure already-completed steps are
// rolled back in reverse order and the error names the failing step; a
// best-effort failure is recorded and the run continues.
func (r *Runner) Run(ctx *steps.Context) (*Result, error) {
	result := &Result{}
	var completed []steps.Step

	for _, entry := range r.entries {
		name := entry.Step.Name()

		if !entry.Enabled {
			slog.Debug("step disabled", "step", name)
			result.record(name, StatusSkipped, "disabled")
			continue
		}

		slog.Info("running step", "step", name)

		err := entry.Step.Run(ctx)
		if err == nil {
			result.record(name, StatusOK, "")
			completed = append(completed, entry.Step)
			continue
		}

		result.record(name, StatusFailed, err.Error())

		if entry.BestEffort {
			slog.Error("step failed, continuing", "step", name, "error", err)
			continue
		}

		slog.Error("step failed, aborting", "step", name, "error", err)
		rollback(completed, ctx)
		return result, fmt.Errorf("step %q failed: %w", name, err)
	}

	return result, nil
}

// rollback undoes completed steps in reverse order. Only steps implementing
// steps.Rollbacker participate.
func rollback(completed []steps.Step, ctx *steps.Context) {
	for i := len(completed) - 1; i >= 0; i-- {
		rb, ok := completed[i].(steps.Rollbacker)
		if !ok {
			continue
		}
		slog.Info("rolling back step", "step", completed[i].Name())
		if err := rb.Rollback(ctx); err != nil {
			slog.Warn("rollback failed", "step", completed[i].Name(), "error", err)
		}
	}
}
