// Package testhelpers provides fakes for the external-process and
// system-effect seams so orchestration logic can be tested hermetically.
package testhelpers

import (
	"context"
	"sync"

	"boxup.dev/boxup/internal/run"
)

// ScriptedResult is one pre-programmed response for FakeExecutor.Run
type ScriptedResult struct {
	Result run.Result
	Err    error
}

// FakeExecutor implements run.Executor with scripted responses. Responses
// are consumed in order; once the script is exhausted every Run succeeds
// with an empty Result.
type FakeExecutor struct {
	mu      sync.Mutex
	Script  []ScriptedResult
	Calls   []run.Command
	Started []run.Command

	// StartErr is returned by Start when non-nil
	StartErr error

	// OnStart runs after a Start call is recorded, e.g. to simulate the
	// detached process's side effects
	OnStart func(cmd run.Command)
}

// Run records the call and pops the next scripted response
func (f *FakeExecutor) Run(_ context.Context, cmd run.Command) (run.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, cmd)
	if len(f.Script) == 0 {
		return run.Result{}, nil
	}
	next := f.Script[0]
	f.Script = f.Script[1:]
	return next.Result, next.Err
}

// Start records the detached launch
func (f *FakeExecutor) Start(cmd run.Command) error {
	f.mu.Lock()
	f.Started = append(f.Started, cmd)
	onStart := f.OnStart
	f.mu.Unlock()

	if f.StartErr != nil {
		return f.StartErr
	}
	if onStart != nil {
		onStart(cmd)
	}
	return nil
}

// RunCount returns how many Run calls were made
func (f *FakeExecutor) RunCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
