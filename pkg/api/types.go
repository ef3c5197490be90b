package api

const (
	BumpPatch = "patch"
	BumpMinor = "minor"
	BumpMajor = "major"
	BumpNone  = "none"

	DefaultCommitMessage = "New commit"
	DefaultTagTemplate   = "v{{ .Version }}"
	DefaultTagMessage    = "New version"
	DefaultCredentialEnv = "SHIPKIT_PUBLISH_TOKEN"
)

// Config is the .shipkit.yaml configuration format. It is built once per
// invocation and not modified during a run.
type Config struct {
	Tidy    TidyConfig    `yaml:"tidy"`
	Test    TestConfig    `yaml:"test"`
	Format  FormatConfig  `yaml:"format"`
	Version VersionConfig `yaml:"version"`
	Docs    DocsConfig    `yaml:"docs"`
	Readme  ReadmeConfig  `yaml:"readme"`
	Git     GitConfig     `yaml:"git"`
	Build   BuildConfig   `yaml:"build"`
	Publish PublishConfig `yaml:"publish"`

	// Set by the loader, not from YAML.
	FilePath string `yaml:"-"`
}

// TidyConfig configures the dependency sync step.
type TidyConfig struct {
	Enabled bool `yaml:"enabled"`
	Update  bool `yaml:"update"` // go get -u ./... before tidy
}

// TestConfig configures the test step.
type TestConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Coverage bool     `yaml:"coverage"`
	Verbose  bool     `yaml:"verbose"`
	Run      string   `yaml:"run"`
	Packages []string `yaml:"packages"`
	Args     []string `yaml:"args"`
}

// FormatConfig configures the formatter step.
type FormatConfig struct {
	Enabled bool     `yaml:"enabled"`
	Binary  string   `yaml:"binary"` // default gofmt
	Args    []string `yaml:"args"`   // default -l -w .
}

// VersionConfig configures the version bump step.
type VersionConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bump    string `yaml:"bump"` // patch, minor, major, none or explicit X.Y.Z
	File    string `yaml:"file"` // overrides the inferred version file
}

// DocsConfig configures the docs regeneration step.
type DocsConfig struct {
	Enabled bool     `yaml:"enabled"`
	Dir     string   `yaml:"dir"`              // default docs
	Command []string `yaml:"command"`          // run inside Dir
	Keep    []string `yaml:"keep"`             // globs spared from the pre-run clean
	Remove  []string `yaml:"remove"`           // globs deleted after the command ran
	GitAdd  *bool    `yaml:"gitAdd,omitempty"` // default true
}

// ReadmeConfig configures README generation.
type ReadmeConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Template string `yaml:"template"`         // default docs/README.md.tmpl
	Output   string `yaml:"output"`           // default README.md
	GitAdd   *bool  `yaml:"gitAdd,omitempty"` // default true
}

// GitConfig configures the commit, tag and push step.
type GitConfig struct {
	Enabled         bool     `yaml:"enabled"`
	CommitMessage   string   `yaml:"commitMessage"`
	Tag             string   `yaml:"tag"` // template; empty string disables tagging
	TagMessage      string   `yaml:"tagMessage"`
	Remote          string   `yaml:"remote"`
	AllowedBranches []string `yaml:"allowedBranches"` // empty disables the branch gate
}

// BuildTarget is a GOOS/GOARCH pair for the build step.
type BuildTarget struct {
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`
}

// BuildConfig configures the binary build step.
type BuildConfig struct {
	Enabled    bool          `yaml:"enabled"`
	OutputDir  string        `yaml:"outputDir"`  // default dist
	Package    string        `yaml:"package"`    // default .
	Targets    []BuildTarget `yaml:"targets"`    // empty builds for the host only
	VersionVar string        `yaml:"versionVar"` // -ldflags -X target, default main.version
}

// PublishConfig configures the publish step.
type PublishConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Command       []string `yaml:"command"` // each element rendered as a template
	CredentialEnv []string `yaml:"credentialEnv"`
}

// Default returns the configuration used when no .shipkit.yaml exists.
// It mirrors the conventional release flow: test, format, bump the patch
// version, commit, tag and push.
func Default() *Config {
	gitAdd := true
	return &Config{
		Test:   TestConfig{Enabled: true, Coverage: true},
		Format: FormatConfig{Enabled: true},
		Version: VersionConfig{
			Enabled: true,
			Bump:    BumpPatch,
		},
		Docs: DocsConfig{
			Dir:    "docs",
			Keep:   []string{"index.md", "*.tmpl", "_static/**", "content/**"},
			GitAdd: &gitAdd,
		},
		Readme: ReadmeConfig{
			Template: "docs/README.md.tmpl",
			Output:   "README.md",
			GitAdd:   &gitAdd,
		},
		Git: GitConfig{
			Enabled:         true,
			CommitMessage:   DefaultCommitMessage,
			Tag:             DefaultTagTemplate,
			TagMessage:      DefaultTagMessage,
			Remote:          "origin",
			AllowedBranches: []string{"main", "master"},
		},
		Build: BuildConfig{
			OutputDir:  "dist",
			Package:    ".",
			VersionVar: "main.version",
		},
		Publish: PublishConfig{
			CredentialEnv: []string{DefaultCredentialEnv},
		},
	}
}
