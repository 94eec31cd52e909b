// Package run executes external programs with captured output, bounded
// timeouts, and a bounded-retry policy. Every tool boxup orchestrates
// (winget, git, npm, diskpart, format, fsutil) goes through this package.
package run

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	boxuperrors "boxup.dev/boxup/internal/errors"
)

// DefaultCommandTimeout is the default timeout for external commands
const DefaultCommandTimeout = 10 * time.Minute

// Command describes a single external-process invocation
type Command struct {
	Program string
	Args    []string
	Dir     string   // working directory; empty means inherit
	Env     []string // appended to os.Environ(); empty means inherit as-is
	Stdin   string   // piped to the process when non-empty
}

// Result carries the captured output of a completed command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs external commands. The interface exists so orchestration
// logic can be tested against a scripted fake.
type Executor interface {
	// Run executes the command and waits for completion
	Run(ctx context.Context, cmd Command) (Result, error)

	// Start launches the command without waiting for it. The process keeps
	// running after Start returns; completion is observed through its side
	// effects (e.g. a directory appearing on disk).
	Start(cmd Command) error
}

// CommandRunner is the real Executor backed by os/exec
type CommandRunner struct{}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{}
}

var defaultRunner = &CommandRunner{}

// Run executes a command using the default runner
func Run(ctx context.Context, cmd Command) (Result, error) {
	return defaultRunner.Run(ctx, cmd)
}

// Output executes program with args and returns trimmed stdout
func Output(ctx context.Context, program string, args ...string) (string, error) {
	res, err := defaultRunner.Run(ctx, Command{Program: program, Args: args})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Run executes the command with the given context. If the context carries no
// deadline, DefaultCommandTimeout is applied.
func (r *CommandRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if c.ProcessState != nil {
		res.ExitCode = c.ProcessState.ExitCode()
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		return res, boxuperrors.NewCommandError(cmd.Program, cmd.Args, res.ExitCode, res.Stdout, res.Stderr, err)
	}
	return res, nil
}

// Start launches the command detached from the current process lifecycle
func (r *CommandRunner) Start(cmd Command) error {
	c := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	if err := c.Start(); err != nil {
		return boxuperrors.NewCommandError(cmd.Program, cmd.Args, -1, "", "", err)
	}
	// Reap the child when it eventually exits so it does not linger as a
	// zombie while the caller polls for its side effects.
	go func() { _ = c.Wait() }()
	return nil
}

// LookPath reports whether program resolves on the execution path
func LookPath(program string) (string, bool) {
	path, err := exec.LookPath(program)
	return path, err == nil
}
