package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"

	boxuperrors "boxup.dev/boxup/internal/errors"
	"boxup.dev/boxup/internal/run"
	"boxup.dev/boxup/internal/tui"
)

const (
	// DefaultPollInterval is how often the clone target is checked for existence
	DefaultPollInterval = 3 * time.Second

	// DefaultCloneTimeout bounds the wait for the clone to materialize
	DefaultCloneTimeout = 15 * time.Minute

	// DefaultBasePath is the repository host prefix cloned from
	DefaultBasePath = "https://github.com/microsoft"
)

// Options selects the repository to bootstrap
type Options struct {
	RepoName string
	Branch   string
	BasePath string
}

// Bootstrapper clones a repository into the workspace root and installs
// per-package dependencies
type Bootstrapper struct {
	Exec         run.Executor
	Splog        *tui.Splog
	Root         string // empty means WorkspaceRoot()
	PollInterval time.Duration
	CloneTimeout time.Duration
	Now          func() time.Time
}

// NewBootstrapper creates a Bootstrapper with the real executor and defaults
func NewBootstrapper(splog *tui.Splog) *Bootstrapper {
	return &Bootstrapper{
		Exec:         run.NewCommandRunner(),
		Splog:        splog,
		PollInterval: DefaultPollInterval,
		CloneTimeout: DefaultCloneTimeout,
		Now:          time.Now,
	}
}

// Run executes the bootstrap sequence: archive-and-recreate workspace,
// detached clone plus bounded wait, submodule update, dependency install.
func (b *Bootstrapper) Run(ctx context.Context, opts Options) error {
	if opts.RepoName == "" {
		return fmt.Errorf("repository name is required")
	}
	basePath := opts.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	branch := opts.Branch
	if branch == "" {
		branch = "main"
	}

	root := b.Root
	if root == "" {
		var err error
		root, err = WorkspaceRoot()
		if err != nil {
			return err
		}
	}

	archived, err := PrepareWorkspace(root, b.Now())
	if err != nil {
		return err
	}
	if archived != "" {
		b.Splog.Info("Archived existing workspace to %s", archived)
	}

	cloneURL := strings.TrimSuffix(basePath, "/") + "/" + opts.RepoName
	target := filepath.Join(root, opts.RepoName)

	b.Splog.Info("Cloning %s (branch %s) into %s", cloneURL, branch, target)
	if err := b.Exec.Start(run.Command{
		Program: "git",
		Args:    []string{"clone", "--branch", branch, cloneURL, target},
		Dir:     root,
	}); err != nil {
		return err
	}

	if err := tui.WithSpinner("Waiting for clone to complete...", func() error {
		return b.waitForClone(ctx, target)
	}); err != nil {
		return err
	}

	if err := b.updateSubmodules(ctx, target); err != nil {
		return err
	}

	if err := b.installDependencies(ctx, target); err != nil {
		return err
	}

	b.Splog.Success("Bootstrapped %s", opts.RepoName)
	return nil
}

// waitForClone polls for the clone target until it holds an openable
// repository. The wait is bounded; expiry surfaces ErrTimeout rather than
// hanging.
func (b *Bootstrapper) waitForClone(ctx context.Context, target string) error {
	deadline := b.Now().Add(b.CloneTimeout)
	ticker := time.NewTicker(b.PollInterval)
	defer ticker.Stop()

	for {
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			if _, err := gogit.PlainOpen(target); err == nil {
				return nil
			}
		}

		if b.Now().After(deadline) {
			return &boxuperrors.TimeoutError{Operation: "clone of " + target, Waited: b.CloneTimeout.String()}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// updateSubmodules initializes and updates all submodules to their remote
// tracking state. Enumeration goes through go-git; the update itself runs
// the git client so --remote semantics match the upstream tool.
func (b *Bootstrapper) updateSubmodules(ctx context.Context, target string) error {
	repo, err := gogit.PlainOpen(target)
	if err != nil {
		return fmt.Errorf("clone at %s is not a usable repository: %w", target, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}

	subs, err := wt.Submodules()
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		b.Splog.Debug("no submodules in %s", target)
		return nil
	}

	b.Splog.Info("Updating %d submodule(s)...", len(subs))
	_, err = run.RunWithRetry(ctx, b.Exec, run.Command{
		Program: "git",
		Args:    []string{"submodule", "update", "--init", "--recursive", "--remote"},
		Dir:     target,
	}, run.RetryOptions{Warn: b.Splog.Warn})
	return err
}

// installDependencies runs the package manager's install step in every
// directory holding a package manifest
func (b *Bootstrapper) installDependencies(ctx context.Context, target string) error {
	dirs, err := FindManifestDirs(target)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		b.Splog.Debug("no package manifests under %s", target)
		return nil
	}

	for _, dir := range dirs {
		b.Splog.Info("Installing dependencies in %s", dir)
		if _, err := run.RunWithRetry(ctx, b.Exec, run.Command{
			Program: "npm",
			Args:    []string{"install"},
			Dir:     dir,
		}, run.RetryOptions{Warn: b.Splog.Warn}); err != nil {
			return err
		}
	}
	return nil
}
