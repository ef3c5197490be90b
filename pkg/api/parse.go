package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFilename is the conventional config file name at the project root.
const ConfigFilename = ".shipkit.yaml"

// Load reads a .shipkit.yaml file on top of the defaults, sets FilePath,
// fills in zero-value options and validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	cfg.FilePath = absPath

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", filename, err)
	}

	return cfg, nil
}

// fillDefaults restores option values that a partial YAML document may have
// zeroed out. Booleans are left alone so steps can be disabled explicitly.
func (c *Config) fillDefaults() {
	d := Default()

	if c.Version.Bump == "" {
		c.Version.Bump = d.Version.Bump
	}
	if c.Docs.Dir == "" {
		c.Docs.Dir = d.Docs.Dir
	}
	if len(c.Docs.Keep) == 0 {
		c.Docs.Keep = d.Docs.Keep
	}
	if c.Docs.GitAdd == nil {
		c.Docs.GitAdd = d.Docs.GitAdd
	}
	if c.Readme.Template == "" {
		c.Readme.Template = d.Readme.Template
	}
	if c.Readme.Output == "" {
		c.Readme.Output = d.Readme.Output
	}
	if c.Readme.GitAdd == nil {
		c.Readme.GitAdd = d.Readme.GitAdd
	}
	if c.Git.CommitMessage == "" {
		c.Git.CommitMessage = d.Git.CommitMessage
	}
	if c.Git.TagMessage == "" {
		c.Git.TagMessage = d.Git.TagMessage
	}
	if c.Git.Remote == "" {
		c.Git.Remote = d.Git.Remote
	}
	if c.Build.OutputDir == "" {
		c.Build.OutputDir = d.Build.OutputDir
	}
	if c.Build.Package == "" {
		c.Build.Package = d.Build.Package
	}
	if c.Build.VersionVar == "" {
		c.Build.VersionVar = d.Build.VersionVar
	}
	if len(c.Publish.CredentialEnv) == 0 {
		c.Publish.CredentialEnv = d.Publish.CredentialEnv
	}
}
