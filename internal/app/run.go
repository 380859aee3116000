package app

import (
	"context"
	"fmt"

	"github.com/vk/refidx/internal/ctxlog"
	"github.com/vk/refidx/internal/engine"
	"github.com/vk/refidx/internal/mapping"
	"github.com/vk/refidx/internal/pipeline"
)

// mapRequest is the behavior the three mapper request types share.
type mapRequest interface {
	Validate() error
	Argv() ([]string, error)
}

// Run executes the requested command based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", appConfig.Command)

	switch appConfig.Command {
	case "build":
		return a.runBuild(ctx)
	case "map-sc":
		req := appConfig.MapSC
		if req == nil {
			return &pipeline.ConfigError{Reason: "no single-cell mapping request was provided"}
		}
		return a.runMapper(ctx, engine.SCMapper, req, req.IndexPrefix, req.CheckAmbigHits())
	case "map-bulk":
		req := appConfig.MapBulk
		if req == nil {
			return &pipeline.ConfigError{Reason: "no bulk mapping request was provided"}
		}
		return a.runMapper(ctx, engine.BulkMapper, req, req.IndexPrefix, req.CheckAmbigHits())
	case "map-atac":
		req := appConfig.MapATAC
		if req == nil {
			return &pipeline.ConfigError{Reason: "no ATAC mapping request was provided"}
		}
		// The ATAC mapper loads the index without the equivalence-class
		// table, so the `.ectab` file is never required.
		return a.runMapper(ctx, engine.ATACMapper, req, req.IndexPrefix, false)
	default:
		return fmt.Errorf("unknown command %q", appConfig.Command)
	}
}

// runBuild drives the staged index build.
func (a *App) runBuild(ctx context.Context) error {
	if a.build == nil {
		return &pipeline.ConfigError{Reason: "no build request was provided by flags or profile"}
	}

	orch, err := pipeline.New(a.registry, Version)
	if err != nil {
		return err
	}
	return orch.Run(ctx, a.build)
}

// runMapper validates a mapping request, checks the index files on
// disk, and dispatches the marshaled invocation to the named engine.
func (a *App) runMapper(ctx context.Context, name string, req mapRequest, indexPrefix string, needECTable bool) error {
	eng, err := a.registry.Lookup(name)
	if err != nil {
		return err
	}

	if indexPrefix == "" {
		return &pipeline.ConfigError{Reason: "an index prefix must be provided"}
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := mapping.Preflight(indexPrefix, needECTable); err != nil {
		return err
	}

	tokens, err := req.Argv()
	if err != nil {
		return err
	}

	a.logger.Info("Dispatching mapper.", "engine", name, "index", indexPrefix)
	code, err := eng.Invoke(ctx, tokens)
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", name, err)
	}
	if code != 0 {
		return &pipeline.StageError{Stage: name, Code: code}
	}

	a.logger.Info("Mapping finished.", "engine", name)
	return nil
}
