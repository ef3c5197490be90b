package paths

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile writes content to path, creating parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindRoot_GoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n")

	nested := filepath.Join(dir, "pkg", "sub")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != dir {
		t.Errorf("expected root %q, got %q", dir, root)
	}
}

func TestFindRoot_GitFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o750); err != nil {
		t.Fatal(err)
	}

	root, err := FindRoot(filepath.Join(dir))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root != dir {
		t.Errorf("expected root %q, got %q", dir, root)
	}
}

func TestModulePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n\ngo 1.25\n")

	module, err := ModulePath(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if module != "example.com/demo" {
		t.Errorf("expected example.com/demo, got %q", module)
	}
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n")
	writeFile(t, filepath.Join(dir, "VERSION"), "1.2.3\n")
	writeFile(t, filepath.Join(dir, "README.md"), "# demo\n")
	writeFile(t, filepath.Join(dir, "docs", "index.md"), "docs\n")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if project.Root != dir {
		t.Errorf("expected root %q, got %q", dir, project.Root)
	}
	if project.Module != "example.com/demo" {
		t.Errorf("expected module example.com/demo, got %q", project.Module)
	}
	if project.VersionFile != filepath.Join(dir, "VERSION") {
		t.Errorf("expected VERSION file, got %q", project.VersionFile)
	}
	if project.DocsDir != filepath.Join(dir, "docs") {
		t.Errorf("expected docs dir, got %q", project.DocsDir)
	}
	if project.Readme != filepath.Join(dir, "README.md") {
		t.Errorf("expected README.md, got %q", project.Readme)
	}
}

func TestDetect_VersionInGoSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n")
	writeFile(t, filepath.Join(dir, "version.go"), "package main\n\nconst Version = \"0.4.0\"\n")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.VersionFile != filepath.Join(dir, "version.go") {
		t.Errorf("expected version.go, got %q", project.VersionFile)
	}
}

func TestDetect_IgnoresVendoredTrees(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/demo\n")
	writeFile(t, filepath.Join(dir, "vendor", "dep", "version.go"), "package dep\n\nconst Version = \"9.9.9\"\n")

	project, err := Detect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if project.VersionFile != "" {
		t.Errorf("expected no version file, got %q", project.VersionFile)
	}
}

func TestFindFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "CHANGELOG.md"), "log\n")
	writeFile(t, filepath.Join(dir, "node_modules", "CHANGELOG.md"), "ignored\n")

	found := FindFile(dir, "CHANGELOG.md")
	if found != filepath.Join(dir, "sub", "CHANGELOG.md") {
		t.Errorf("expected sub/CHANGELOG.md, got %q", found)
	}

	if found := FindFile(dir, "missing.txt"); found != "" {
		t.Errorf("expected empty result, got %q", found)
	}
}
