package testutil

import (
	"context"
	"sync"
)

// FakeEngine is an in-memory engine double. It records every argv it
// is invoked with and returns a scripted exit code, optionally running
// a side effect first (e.g. creating the artifacts a real engine would
// produce).
type FakeEngine struct {
	EngineName    string
	EngineVersion string

	// ExitCode is returned from every invocation.
	ExitCode int

	// InvokeErr, when set, is returned instead of an exit code.
	InvokeErr error

	// OnInvoke, when set, runs before the scripted result is returned.
	OnInvoke func(argv []string) error

	mu    sync.Mutex
	calls [][]string
}

// Name implements engine.Engine.
func (f *FakeEngine) Name() string { return f.EngineName }

// Version implements engine.Engine.
func (f *FakeEngine) Version() string {
	if f.EngineVersion == "" {
		return "test"
	}
	return f.EngineVersion
}

// Invoke implements engine.Engine.
func (f *FakeEngine) Invoke(_ context.Context, argv []string) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), argv...))
	f.mu.Unlock()

	if f.InvokeErr != nil {
		return -1, f.InvokeErr
	}
	if f.OnInvoke != nil {
		if err := f.OnInvoke(argv); err != nil {
			return -1, err
		}
	}
	return f.ExitCode, nil
}

// Calls returns every recorded argv, in invocation order.
func (f *FakeEngine) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of invocations so far.
func (f *FakeEngine) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
