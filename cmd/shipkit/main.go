package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shipkit/shipkit/pkg/api"
	"github.com/shipkit/shipkit/pkg/logging"
	"github.com/shipkit/shipkit/pkg/paths"
	"github.com/shipkit/shipkit/pkg/pipeline"
	"github.com/shipkit/shipkit/pkg/scaffold"
	"github.com/shipkit/shipkit/pkg/steps"
)

var version = "dev"

const (
	_ = iota
	exitDotenvError
	exitLoadConfigurationFileFailed
	exitProjectDetectionFailed
	exitPreflightFailed
	exitPipelineFailed
	exitScaffoldFailed
	exitLoggingInitFailed
)

var (
	configFile    string
	rootDir       string
	newProjectDir string
	projectName   string
	projectModule string
	projectAuthor string
	bump          string
	commitMessage string
	tag           string
	runTidy       bool
	runTests      bool
	runFormat     bool
	runDocs       bool
	runReadme     bool
	runGit        bool
	runBuild      bool
	runPublish    bool
	loggingType   string
	logLevel      string
	showVersion   bool
)

func init() {
	flag.StringVar(
		&configFile,
		"config",
		"",
		"config file (default <root>/.shipkit.yaml when present)")
	flag.StringVar(
		&rootDir,
		"root",
		".",
		"project directory (root is detected from here)")
	flag.StringVar(
		&newProjectDir,
		"new",
		"",
		"create a new project in this directory and exit")
	flag.StringVar(
		&projectName,
		"name",
		"",
		"project name for -new (default: directory name)")
	flag.StringVar(
		&projectModule,
		"module",
		"",
		"module path for -new (default: project name)")
	flag.StringVar(
		&projectAuthor,
		"author",
		"",
		"author for -new")
	flag.StringVar(
		&bump,
		"bump",
		"",
		"version bump: patch, minor, major, none or X.Y.Z")
	flag.StringVar(
		&commitMessage,
		"commit-message",
		"",
		"git commit message")
	flag.StringVar(
		&tag,
		"tag",
		"",
		"git tag template, e.g. 'v{{ .Version }}'; empty disables tagging")
	flag.BoolVar(&runTidy, "tidy", false, "enable/disable the tidy step")
	flag.BoolVar(&runTests, "test", true, "enable/disable the test step")
	flag.BoolVar(&runFormat, "format", true, "enable/disable the format step")
	flag.BoolVar(&runDocs, "docs", false, "enable/disable the docs step")
	flag.BoolVar(&runReadme, "readme", false, "enable/disable the readme step")
	flag.BoolVar(&runGit, "git", true, "enable/disable the git step")
	flag.BoolVar(&runBuild, "build", false, "enable/disable the build step")
	flag.BoolVar(&runPublish, "publish", false, "enable/disable the publish step")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingInitFailed)
	}

	if newProjectDir != "" {
		runScaffold()
		return
	}

	includeEnv()

	project := detectProject()
	cfg := loadConfig(project)
	applyFlagOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(exitLoadConfigurationFileFailed)
	}

	ctx := &steps.Context{
		RootDir:     project.Root,
		Module:      project.Module,
		VersionFile: project.VersionFile,
		DocsDir:     project.DocsDir,
		ReadmePath:  project.Readme,
	}
	if project.VersionFile != "" {
		if current, err := paths.ReadVersion(project.VersionFile); err == nil {
			ctx.Version = current
		}
	}

	if err := (pipeline.Gate{}).Check(cfg, ctx); err != nil {
		slog.Error("preflight check failed", "error", err)
		os.Exit(exitPreflightFailed)
	}

	runner := pipeline.New(pipeline.Plan(cfg))
	result, err := runner.Run(ctx)

	for _, outcome := range result.Outcomes {
		switch outcome.Status {
		case pipeline.StatusOK:
			slog.Info("step succeeded", "step", outcome.Step)
		case pipeline.StatusSkipped:
			slog.Debug("step skipped", "step", outcome.Step)
		case pipeline.StatusFailed:
			slog.Error("step failed", "step", outcome.Step, "message", outcome.Message)
		}
	}

	if err != nil {
		slog.Error("pipeline aborted", "error", err)
		os.Exit(exitPipelineFailed)
	}
	if failed := result.Failed(); len(failed) > 0 {
		slog.Warn("pipeline finished with best-effort failures", "failed", len(failed))
	}

	slog.Info("done")
}

func runScaffold() {
	err := scaffold.Create(newProjectDir, scaffold.Data{
		Name:   projectName,
		Module: projectModule,
		Author: projectAuthor,
	})
	if err != nil {
		slog.Error("scaffolding failed", "dir", newProjectDir, "error", err)
		os.Exit(exitScaffoldFailed)
	}
}

func detectProject() *paths.Project {
	project, err := paths.Detect(rootDir)
	if err != nil {
		slog.Error("could not detect project", "start", rootDir, "error", err)
		os.Exit(exitProjectDetectionFailed)
	}
	slog.Debug("project detected", "root", project.Root, "module", project.Module)
	return project
}

func loadConfig(project *paths.Project) *api.Config {
	filename := configFile
	if filename == "" {
		candidate := filepath.Join(project.Root, api.ConfigFilename)
		if _, err := os.Stat(candidate); err != nil {
			slog.Info("no config file found, using defaults")
			return api.Default()
		}
		filename = candidate
	}

	cfg, err := api.Load(filename)
	if err != nil {
		slog.Error("failed to load config", "filename", filename, "error", err)
		os.Exit(exitLoadConfigurationFileFailed)
	}
	return cfg
}

// applyFlagOverrides lets explicitly set flags win over the config file.
// Flags that were not passed keep the file's values.
func applyFlagOverrides(cfg *api.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bump":
			cfg.Version.Bump = bump
		case "commit-message":
			cfg.Git.CommitMessage = commitMessage
		case "tag":
			cfg.Git.Tag = tag
		case "tidy":
			cfg.Tidy.Enabled = runTidy
		case "test":
			cfg.Test.Enabled = runTests
		case "format":
			cfg.Format.Enabled = runFormat
		case "docs":
			cfg.Docs.Enabled = runDocs
		case "readme":
			cfg.Readme.Enabled = runReadme
		case "git":
			cfg.Git.Enabled = runGit
		case "build":
			cfg.Build.Enabled = runBuild
		case "publish":
			cfg.Publish.Enabled = runPublish
		}
	})
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
