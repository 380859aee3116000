package pipeline

import (
	"context"
	"fmt"

	"github.com/vk/refidx/internal/artifact"
	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/ctxlog"
	"github.com/vk/refidx/internal/engine"
	"github.com/vk/refidx/internal/fasta"
)

// Orchestrator sequences the staged index build: graph construction,
// reference-index construction, and optional poison-table
// construction. Engines are injected capabilities; the orchestrator
// only marshals their argv, blocks on invocation, and interprets the
// exit code.
//
// A single build assumes single-writer access to the work directory
// and the output prefix; no file locking is performed.
type Orchestrator struct {
	graph   engine.Engine
	index   engine.Engine
	poison  engine.Engine
	version string
}

// New resolves the three build engines from the registry. The version
// string identifies the orchestrator itself in the provenance manifest.
func New(reg *engine.Registry, version string) (*Orchestrator, error) {
	graph, err := reg.Lookup(engine.GraphBuilder)
	if err != nil {
		return nil, err
	}
	index, err := reg.Lookup(engine.IndexBuilder)
	if err != nil {
		return nil, err
	}
	poison, err := reg.Lookup(engine.PoisonBuilder)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{graph: graph, index: index, poison: poison, version: version}, nil
}

// Run drives one build request through the pipeline. Configuration,
// input, conflict, and filesystem errors are returned before any
// engine is invoked; a stage failure aborts immediately with the
// failed stage's artifacts left intact for inspection.
func (o *Orchestrator) Run(ctx context.Context, req *config.BuildRequest) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting index build.", "output", req.OutputPrefix, "k", req.KLen, "m", req.MLen)

	state := Idle

	if err := ValidateBuild(req); err != nil {
		return err
	}

	set := artifact.Resolve(req.OutputPrefix)

	if err := artifact.Reconcile(ctx, set, req.Overwrite); err != nil {
		return err
	}
	if err := artifact.EnsureDirs(ctx, req.WorkDir, set); err != nil {
		return err
	}

	if len(req.RefSeqs) > 0 {
		if err := fasta.WriteSignatures(ctx, req.RefSeqs, set.SignatureFile, req.PolyAClipLength); err != nil {
			return fmt.Errorf("failed to scan reference sequences: %w", err)
		}
	}

	if err := o.runStage(ctx, o.graph, func() ([]string, error) { return GraphArgv(req, set) }); err != nil {
		state = Aborted
		logger.Error("Build aborted.", "state", state.String(), "error", err)
		return err
	}
	state = GraphBuilt
	logger.Debug("Stage complete.", "state", state.String())

	if err := o.runStage(ctx, o.index, func() ([]string, error) { return IndexArgv(req, set) }); err != nil {
		state = Aborted
		logger.Error("Build aborted.", "state", state.String(), "error", err)
		return err
	}
	state = IndexBuilt
	logger.Debug("Stage complete.", "state", state.String())

	poisoned := false
	if len(req.DecoyPaths) > 0 {
		if err := o.runStage(ctx, o.poison, func() ([]string, error) { return PoisonArgv(req, set) }); err != nil {
			state = Aborted
			logger.Error("Build aborted.", "state", state.String(), "error", err)
			return err
		}
		state = PoisonBuilt
		logger.Debug("Stage complete.", "state", state.String())
		poisoned = true
	}

	if !req.KeepIntermediate {
		artifact.CleanupIntermediate(ctx, set)
	}

	versions := map[string]string{
		"refidx":            o.version,
		engine.GraphBuilder: o.graph.Version(),
		engine.IndexBuilder: o.index.Version(),
	}
	if poisoned {
		versions[engine.PoisonBuilder] = o.poison.Version()
	}
	if err := artifact.WriteVersionManifest(set, versions); err != nil {
		return err
	}

	state = Done
	logger.Info("Index build finished.", "state", state.String())
	return nil
}

// runStage marshals one stage's argv and blocks on the engine. A
// nonzero exit code becomes a StageError naming the stage.
func (o *Orchestrator) runStage(ctx context.Context, eng engine.Engine, marshal func() ([]string, error)) error {
	logger := ctxlog.FromContext(ctx)

	tokens, err := marshal()
	if err != nil {
		return err
	}

	logger.Info("Invoking engine.", "engine", eng.Name(), "argv", tokens)
	code, err := eng.Invoke(ctx, tokens)
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", eng.Name(), err)
	}
	if code != 0 {
		return &StageError{Stage: eng.Name(), Code: code}
	}
	return nil
}
