package configure

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"boxup.dev/boxup/internal/release"
	"boxup.dev/boxup/internal/run"
	"boxup.dev/boxup/internal/tui"
)

// DefaultToolName is the configuration-management executable
const DefaultToolName = "winget"

// DefaultFeedOwner and DefaultFeedRepo locate the tool's release feed
const (
	DefaultFeedOwner = "microsoft"
	DefaultFeedRepo  = "winget-cli"
)

// Runner applies a configuration document through the configuration tool
type Runner struct {
	Exec     run.Executor
	Feed     release.Feed
	Splog    *tui.Splog
	ToolName string
}

// NewRunner creates a Runner with the real executor and GitHub feed
func NewRunner(ctx context.Context, splog *tui.Splog, token string) *Runner {
	return &Runner{
		Exec:     run.NewCommandRunner(),
		Feed:     release.NewGitHubFeed(ctx, DefaultFeedOwner, DefaultFeedRepo, token),
		Splog:    splog,
		ToolName: DefaultToolName,
	}
}

// ensureTool returns the path of the configuration tool, installing it from
// the release feed when it is absent from the execution path.
func (r *Runner) ensureTool(ctx context.Context) (string, error) {
	if path, ok := run.LookPath(r.ToolName); ok {
		return path, nil
	}

	r.Splog.Info("%s not found on PATH, installing from release feed...", r.ToolName)

	var installDir string
	err := tui.WithSpinner(fmt.Sprintf("Downloading %s...", r.ToolName), func() error {
		var ierr error
		installDir, ierr = release.Install(ctx, r.Feed, r.ToolName)
		return ierr
	})
	if err != nil {
		return "", fmt.Errorf("failed to install %s: %w", r.ToolName, err)
	}

	toolPath, err := findExecutable(installDir, r.ToolName)
	if err != nil {
		return "", err
	}

	r.Splog.Success("Installed %s to %s", r.ToolName, installDir)
	return toolPath, nil
}

// findExecutable locates the tool binary inside the expanded archive
func findExecutable(dir, toolName string) (string, error) {
	want := strings.ToLower(toolName)
	if runtime.GOOS == "windows" {
		want += ".exe"
	}

	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.ToLower(d.Name()) == want {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", fmt.Errorf("%s executable not found under %s", toolName, dir)
	}
	return found, nil
}

// Apply resolves the configuration document for src and pipes it into the
// tool's apply operation. The tool's exit status decides success.
func (r *Runner) Apply(ctx context.Context, src Source) error {
	document, err := Resolve(ctx, src)
	if err != nil {
		return err
	}

	toolPath, err := r.ensureTool(ctx)
	if err != nil {
		return err
	}

	r.Splog.Info("Applying configuration...")
	r.Splog.Debug("configuration document:\n%s", document)

	res, err := r.Exec.Run(ctx, run.Command{
		Program: toolPath,
		Args:    []string{"config", "set"},
		Stdin:   document,
	})
	if err != nil {
		return err
	}
	if res.Stdout != "" {
		r.Splog.Debug("%s output:\n%s", r.ToolName, res.Stdout)
	}

	r.Splog.Success("Configuration applied")
	return nil
}
