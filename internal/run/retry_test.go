package run_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	boxuperrors "boxup.dev/boxup/internal/errors"
	"boxup.dev/boxup/internal/run"
	"boxup.dev/boxup/testhelpers"
)

func failure(exit int) testhelpers.ScriptedResult {
	return testhelpers.ScriptedResult{
		Result: run.Result{ExitCode: exit},
		Err:    boxuperrors.NewCommandError("tool", nil, exit, "", "boom", nil),
	}
}

func TestRunWithRetry(t *testing.T) {
	cmd := run.Command{Program: "tool", Args: []string{"step"}}

	t.Run("succeeds on third attempt and warns twice", func(t *testing.T) {
		exec := &testhelpers.FakeExecutor{
			Script: []testhelpers.ScriptedResult{failure(1), failure(1), {}},
		}

		var warnings []string
		var slept []time.Duration
		_, err := run.RunWithRetry(context.Background(), exec, cmd, run.RetryOptions{
			Attempts: 3,
			Warn:     func(format string, args ...interface{}) { warnings = append(warnings, format) },
			Sleep:    func(d time.Duration) { slept = append(slept, d) },
		})

		require.NoError(t, err)
		require.Equal(t, 3, exec.RunCount())
		require.Len(t, warnings, 2)
		// Linear back-off: attempt count is the sleep duration in seconds
		require.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, slept)
	})

	t.Run("fails after exhausting attempts", func(t *testing.T) {
		exec := &testhelpers.FakeExecutor{
			Script: []testhelpers.ScriptedResult{failure(1), failure(1), failure(1)},
		}

		var warnings []string
		_, err := run.RunWithRetry(context.Background(), exec, cmd, run.RetryOptions{
			Attempts: 3,
			Warn:     func(format string, args ...interface{}) { warnings = append(warnings, format) },
			Sleep:    func(time.Duration) {},
		})

		require.Error(t, err)
		require.ErrorAs(t, err, new(*boxuperrors.CommandError))
		require.Equal(t, 3, exec.RunCount())
		// The final failure is fatal, not a warning
		require.Len(t, warnings, 2)
	})

	t.Run("first success short-circuits", func(t *testing.T) {
		exec := &testhelpers.FakeExecutor{}

		res, err := run.RunWithRetry(context.Background(), exec, cmd, run.RetryOptions{
			Sleep: func(time.Duration) { t.Fatal("should not sleep") },
		})

		require.NoError(t, err)
		require.Equal(t, 0, res.ExitCode)
		require.Equal(t, 1, exec.RunCount())
	})

	t.Run("default attempt count is three", func(t *testing.T) {
		exec := &testhelpers.FakeExecutor{
			Script: []testhelpers.ScriptedResult{failure(1), failure(1), failure(1), failure(1)},
		}

		_, err := run.RunWithRetry(context.Background(), exec, cmd, run.RetryOptions{
			Sleep: func(time.Duration) {},
		})

		require.Error(t, err)
		require.Equal(t, 3, exec.RunCount())
	})
}

func TestRetryFunc(t *testing.T) {
	t.Run("retries until success", func(t *testing.T) {
		calls := 0
		err := run.RetryFunc(context.Background(), run.RetryOptions{
			Attempts: 3,
			Sleep:    func(time.Duration) {},
		}, func(context.Context) error {
			calls++
			if calls < 2 {
				return boxuperrors.NewCommandError("x", nil, 1, "", "", nil)
			}
			return nil
		})

		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})
}
