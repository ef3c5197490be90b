package steps

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Context provides the runtime context shared by all steps. The version step
// updates Version so later steps (readme, git tag, build, publish) see the
// bumped value.
type Context struct {
	RootDir     string
	Module      string
	VersionFile string
	DocsDir     string
	ReadmePath  string
	Version     string
}

// Step is the interface all pipeline steps implement.
type Step interface {
	Name() string
	Run(ctx *Context) error
}

// Rollbacker is implemented by steps that can undo their work when a later
// step fails fatally.
type Rollbacker interface {
	Rollback(ctx *Context) error
}

// runCommand executes an external tool in dir and returns its stdout.
// Failures carry the captured stderr so the tool's own diagnostics surface.
func runCommand(dir, name string, args ...string) ([]byte, error) {
	return runCommandEnv(dir, nil, name, args...)
}

func runCommandEnv(dir string, extraEnv []string, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("%s binary not found in PATH: %w", name, err)
	}

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(cmd.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w\nstderr: %s",
			name, strings.Join(args, " "), err, stderr.String())
	}

	return stdout.Bytes(), nil
}
