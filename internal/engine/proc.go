package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/vk/refidx/internal/ctxlog"
)

// Proc is an Engine that launches an external binary. The binary
// receives the marshaled argv (minus argv[0], which names the engine)
// and its exit code is reported back unchanged.
type Proc struct {
	// EngineName is the registered engine name; it is also the default
	// binary name when Binary is empty.
	EngineName string

	// Binary is the path of the executable to launch. When empty the
	// engine name is resolved against PATH.
	Binary string

	// BinaryVersion is reported in the provenance manifest.
	BinaryVersion string

	// Stdout and Stderr receive the process output. When nil the
	// parent's streams are used.
	Stdout, Stderr *os.File
}

// Name implements Engine.
func (p *Proc) Name() string { return p.EngineName }

// Version implements Engine.
func (p *Proc) Version() string {
	if p.BinaryVersion == "" {
		return "unknown"
	}
	return p.BinaryVersion
}

// Invoke implements Engine. It blocks until the process exits; there
// is no mid-stage cancellation beyond the process reacting to the
// context being canceled.
func (p *Proc) Invoke(ctx context.Context, argv []string) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("engine %s invoked with empty argv", p.EngineName)
	}

	binary := p.Binary
	if binary == "" {
		binary = p.EngineName
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Launching engine process.", "engine", p.EngineName, "binary", binary, "argv", argv)

	cmd := exec.CommandContext(ctx, binary, argv[1:]...)
	cmd.Stdout = p.Stdout
	cmd.Stderr = p.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to launch engine %s (%s): %w", p.EngineName, binary, err)
}
