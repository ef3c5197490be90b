package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// versionLine matches a Go version assignment like
//
//	const Version = "1.2.3"
//	var Version = "1.2.3"
//	Version = "1.2.3"
//
// keeping everything around the quoted value intact.
var versionLine = regexp.MustCompile(`^(\s*(?:const\s+|var\s+)?Version\s*=\s*")([^"]*)(".*)$`)

// ExtractVersion returns the version stored in file. A file named VERSION
// holds the bare version; any other file is scanned for a version
// assignment line.
func ExtractVersion(file string, data []byte) (string, bool) {
	if filepath.Base(file) == "VERSION" {
		v := strings.TrimSpace(string(data))
		return v, v != ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		if m := versionLine.FindStringSubmatch(line); m != nil {
			return m[2], m[2] != ""
		}
	}
	return "", false
}

// ReadVersion reads and extracts the version from file.
func ReadVersion(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading version file: %w", err)
	}
	version, ok := ExtractVersion(file, data)
	if !ok {
		return "", fmt.Errorf("no version found in %s", file)
	}
	return version, nil
}

// WriteVersion replaces the version stored in file with version, leaving the
// rest of the file untouched.
func WriteVersion(file, version string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("stat version file: %w", err)
	}

	if filepath.Base(file) == "VERSION" {
		return os.WriteFile(file, []byte(version+"\n"), info.Mode())
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading version file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	found := false
	for i, line := range lines {
		if m := versionLine.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + version + m[3]
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no version assignment found in %s", file)
	}

	return os.WriteFile(file, []byte(strings.Join(lines, "\n")), info.Mode())
}
