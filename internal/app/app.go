package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/ctxlog"
	"github.com/vk/refidx/internal/engine"
)

// Version identifies this build of refidx in the provenance manifest
// written next to each index.
const Version = "0.1.0"

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *engine.Registry
	build    *config.BuildRequest
}

// NewApp is the constructor for the main application. It returns a
// fully initialized App instance, including its own isolated logger
// and engine registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...engine.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, appConfig.Quiet, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the profile into the format-agnostic model first.
	model := &config.Model{Engines: make(map[string]string)}
	if appConfig.ProfilePath != "" {
		loaded, err := loader.Load(ctx, appConfig.ProfilePath)
		if err != nil {
			// A failure to load the profile is a fatal startup error.
			panic(fmt.Errorf("failed to load profile: %w", err))
		}
		model = loaded
		if model.Engines == nil {
			model.Engines = make(map[string]string)
		}
		logger.Debug("Profile loaded and translated into unified model.")
	}

	// Create and populate the registry with engine adapters.
	reg := engine.New()
	if len(modules) == 0 {
		modules = coreModules(model.Engines)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All engine modules registered.", "engines", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		build:    mergeBuild(model.Build, appConfig),
	}
}

// Registry returns the application's engine registry. This is
// primarily for testing.
func (a *App) Registry() *engine.Registry {
	return a.registry
}

// mergeBuild overlays explicitly set build flags on top of the profile
// request. The three input forms replace each other wholesale so that
// a flag-provided form does not accumulate with a profile-provided one.
func mergeBuild(profile *config.BuildRequest, appConfig *Config) *config.BuildRequest {
	flags := appConfig.Build
	if profile == nil {
		return flags
	}
	if flags == nil {
		return profile
	}

	merged := *profile
	set := appConfig.BuildFlagsSet

	if set["ref-seqs"] || set["ref-lists"] || set["ref-dirs"] {
		merged.RefSeqs = flags.RefSeqs
		merged.RefLists = flags.RefLists
		merged.RefDirs = flags.RefDirs
	}
	if set["klen"] {
		merged.KLen = flags.KLen
	}
	if set["mlen"] {
		merged.MLen = flags.MLen
	}
	if set["threads"] {
		merged.Threads = flags.Threads
	}
	if set["output"] {
		merged.OutputPrefix = flags.OutputPrefix
	}
	if set["work-dir"] {
		merged.WorkDir = flags.WorkDir
	}
	if set["overwrite"] {
		merged.Overwrite = flags.Overwrite
	}
	if set["keep-intermediate-dbg"] {
		merged.KeepIntermediate = flags.KeepIntermediate
	}
	if set["no-ec-table"] {
		merged.NoECTable = flags.NoECTable
	}
	if set["decoy-paths"] {
		merged.DecoyPaths = flags.DecoyPaths
	}
	if set["seed"] {
		merged.Seed = flags.Seed
	}
	if set["polya-clip-length"] {
		merged.PolyAClipLength = flags.PolyAClipLength
	}
	merged.Quiet = flags.Quiet

	return &merged
}
