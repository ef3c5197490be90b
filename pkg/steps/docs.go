package steps

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/shipkit/shipkit/pkg/api"
)

type docsStep struct {
	cfg api.DocsConfig
}

// NewDocsStep creates a step that regenerates API documentation. The docs
// directory is cleaned first so files for removed or renamed code don't
// linger, then the configured docs command runs inside it.
func NewDocsStep(cfg api.DocsConfig) Step {
	return &docsStep{cfg: cfg}
}

func (s *docsStep) Name() string { return "docs" }

func (s *docsStep) Run(ctx *Context) error {
	dir := filepath.Join(ctx.RootDir, s.cfg.Dir)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return fmt.Errorf("docs directory %s not found", dir)
	}

	if err := cleanExcept(dir, s.cfg.Keep); err != nil {
		return fmt.Errorf("cleaning docs directory: %w", err)
	}

	if len(s.cfg.Command) == 0 {
		return fmt.Errorf("docs command is not configured")
	}

	slog.Info("regenerating docs", "step", s.Name(), "dir", dir, "command", s.cfg.Command[0])

	if _, err := runCommand(dir, s.cfg.Command[0], s.cfg.Command[1:]...); err != nil {
		return fmt.Errorf("docs command failed: %w", err)
	}

	if len(s.cfg.Remove) > 0 {
		if err := removeMatching(dir, s.cfg.Remove); err != nil {
			return fmt.Errorf("removing generated files: %w", err)
		}
	}

	if s.cfg.GitAdd == nil || *s.cfg.GitAdd {
		if _, err := runCommand(ctx.RootDir, "git", "add", s.cfg.Dir); err != nil {
			slog.Warn("failed to stage docs", "step", s.Name(), "error", err)
		}
	}

	return nil
}

// cleanExcept deletes every file under dir whose path relative to dir matches
// none of the keep globs, then prunes directories left empty.
func cleanExcept(dir string, keep []string) error {
	var doomed []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error at %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}
		matched, matchErr := matchesAny(keep, rel)
		if matchErr != nil {
			return matchErr
		}
		if !matched {
			doomed = append(doomed, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, path := range doomed {
		slog.Debug("removing stale docs file", "path", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}

	return pruneEmptyDirs(dir)
}

func removeMatching(dir string, patterns []string) error {
	var doomed []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error at %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, relErr)
		}
		matched, matchErr := matchesAny(patterns, rel)
		if matchErr != nil {
			return matchErr
		}
		if matched {
			doomed = append(doomed, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, path := range doomed {
		slog.Debug("removing unwanted docs file", "path", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
	}
	return nil
}

func matchesAny(patterns []string, rel string) (bool, error) {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		ok, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("glob %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func pruneEmptyDirs(dir string) error {
	var dirs []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk error at %s: %w", path, err)
		}
		if d.IsDir() && path != dir {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Deepest first so nested empties collapse upward.
	for i := len(dirs) - 1; i >= 0; i-- {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			continue
		}
		if len(entries) == 0 {
			if err := os.Remove(dirs[i]); err != nil {
				return fmt.Errorf("removing empty directory %s: %w", dirs[i], err)
			}
		}
	}
	return nil
}
