package run

import (
	"context"
	"time"
)

// DefaultRetryAttempts is the default number of attempts for RunWithRetry
const DefaultRetryAttempts = 3

// WarnFunc receives a warning message for a non-final failed attempt
type WarnFunc func(format string, args ...interface{})

// RetryOptions configures RunWithRetry
type RetryOptions struct {
	// Attempts is the maximum number of attempts. Zero means DefaultRetryAttempts.
	Attempts int

	// Warn is called once per non-final failed attempt. Nil disables warnings.
	Warn WarnFunc

	// Sleep is the sleep function used between attempts. Nil means time.Sleep.
	// Injectable so retry behavior can be tested without waiting.
	Sleep func(time.Duration)
}

func (o RetryOptions) attempts() int {
	if o.Attempts <= 0 {
		return DefaultRetryAttempts
	}
	return o.Attempts
}

func (o RetryOptions) sleep(d time.Duration) {
	if o.Sleep != nil {
		o.Sleep(d)
		return
	}
	time.Sleep(d)
}

// RunWithRetry executes cmd through exec, retrying on failure with a linear
// back-off: after failed attempt n it sleeps n seconds before trying again.
// Non-final failures are reported through opts.Warn; the final attempt's
// error is returned as-is.
func RunWithRetry(ctx context.Context, exec Executor, cmd Command, opts RetryOptions) (Result, error) {
	var (
		res Result
		err error
	)
	attempts := opts.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err = exec.Run(ctx, cmd)
		if err == nil {
			return res, nil
		}
		if attempt == attempts {
			break
		}
		if opts.Warn != nil {
			opts.Warn("attempt %d of %d failed for %s: %v", attempt, attempts, cmd.Program, err)
		}
		opts.sleep(time.Duration(attempt) * time.Second)
		if ctx != nil && ctx.Err() != nil {
			return res, ctx.Err()
		}
	}
	return res, err
}

// RetryFunc retries fn with the same bounded linear back-off policy as
// RunWithRetry, for operations that are not a single process invocation.
func RetryFunc(ctx context.Context, opts RetryOptions, fn func(ctx context.Context) error) error {
	var err error
	attempts := opts.attempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if opts.Warn != nil {
			opts.Warn("attempt %d of %d failed: %v", attempt, attempts, err)
		}
		opts.sleep(time.Duration(attempt) * time.Second)
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}
