// Package hcl_adapter is the HCL-specific implementation of the
// config.Loader interface: it reads build profiles (a `build` block
// plus an optional `engines` block of binary-path overrides) and
// translates them into the format-agnostic model.
package hcl_adapter

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/ctxlog"
	"github.com/vk/refidx/internal/fsutil"
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot is the top-level structure of a profile file for decoding.
type fileRoot struct {
	Build   *buildBlock `hcl:"build,block"`
	Engines *hclBody    `hcl:"engines,block"`
}

// hclBody defers decoding of a block to attribute iteration.
type hclBody struct {
	Body hcl.Body `hcl:",remain"`
}

// buildBlock mirrors config.BuildRequest. Pointer fields distinguish
// "absent" from a legitimate zero (mlen = 0 is valid).
type buildBlock struct {
	RefSeqs  []string `hcl:"ref_seqs,optional"`
	RefLists []string `hcl:"ref_lists,optional"`
	RefDirs  []string `hcl:"ref_dirs,optional"`

	KLen    *int `hcl:"klen,optional"`
	MLen    *int `hcl:"mlen,optional"`
	Threads *int `hcl:"threads,optional"`

	Output  string `hcl:"output"`
	WorkDir string `hcl:"work_dir,optional"`

	Overwrite        bool `hcl:"overwrite,optional"`
	KeepIntermediate bool `hcl:"keep_intermediate_dbg,optional"`
	NoECTable        bool `hcl:"no_ec_table,optional"`

	DecoyPaths []string `hcl:"decoy_paths,optional"`

	Seed            *uint64 `hcl:"seed,optional"`
	PolyAClipLength int     `hcl:"polya_clip_length,optional"`
}

// Load reads every profile file reachable from the given paths and
// merges them into a single model. Later files override earlier ones.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL profile loader started.", "path_count", len(paths))

	files, err := fsutil.FindProfileFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered profile files.", "count", len(files))

	model := &config.Model{Engines: make(map[string]string)}
	parser := hclparse.NewParser()
	evalCtx := newEvalContext()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse profile %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode profile %s: %w", file, diags)
		}

		if root.Build != nil {
			model.Build = translateBuild(root.Build)
		}
		if root.Engines != nil {
			if err := mergeEngines(model.Engines, root.Engines.Body, evalCtx); err != nil {
				return nil, fmt.Errorf("failed to decode engines block in %s: %w", file, err)
			}
		}
	}

	logger.Debug("Profile loading complete.", "has_build", model.Build != nil, "engines", len(model.Engines))
	return model, nil
}

// newEvalContext exposes runtime facts to profile expressions, e.g.
// `threads = cpu.count`.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cpu": cty.ObjectVal(map[string]cty.Value{
				"count": cty.NumberIntVal(int64(runtime.NumCPU())),
			}),
		},
	}
}

// translateBuild applies profile defaults and produces the immutable
// request value.
func translateBuild(b *buildBlock) *config.BuildRequest {
	req := &config.BuildRequest{
		RefSeqs:          b.RefSeqs,
		RefLists:         b.RefLists,
		RefDirs:          b.RefDirs,
		KLen:             31,
		MLen:             19,
		OutputPrefix:     b.Output,
		WorkDir:          config.DefaultWorkDir,
		Overwrite:        b.Overwrite,
		KeepIntermediate: b.KeepIntermediate,
		NoECTable:        b.NoECTable,
		DecoyPaths:       b.DecoyPaths,
		Seed:             config.DefaultSeed,
		PolyAClipLength:  b.PolyAClipLength,
	}
	if b.KLen != nil {
		req.KLen = *b.KLen
	}
	if b.MLen != nil {
		req.MLen = *b.MLen
	}
	if b.Threads != nil {
		req.Threads = *b.Threads
	}
	if b.WorkDir != "" {
		req.WorkDir = b.WorkDir
	}
	if b.Seed != nil {
		req.Seed = *b.Seed
	}
	return req
}

// mergeEngines folds an engines block's attributes (engine name to
// binary path) into the accumulated map.
func mergeEngines(into map[string]string, body hcl.Body, evalCtx *hcl.EvalContext) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return diags
		}
		if val.Type() != cty.String {
			return fmt.Errorf("engine %q must be a string path, got %s", name, val.Type().FriendlyName())
		}
		into[name] = val.AsString()
	}
	return nil
}
