package pipeline

import (
	"github.com/vk/refidx/internal/argv"
	"github.com/vk/refidx/internal/artifact"
	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/engine"
)

// GraphArgv marshals the graph-construction invocation. Exactly one of
// the three reference-input flags is emitted; the validator guarantees
// exactly one form is populated.
func GraphArgv(req *config.BuildRequest, set artifact.Set) ([]string, error) {
	b := argv.NewBuilder(engine.GraphBuilder)

	switch {
	case len(req.RefSeqs) > 0:
		b.PathsFlag("--seq", req.RefSeqs)
	case len(req.RefLists) > 0:
		b.PathsFlag("--list", req.RefLists)
	case len(req.RefDirs) > 0:
		b.PathsFlag("--dir", req.RefDirs)
	}

	return b.
		IntFlag("-k", req.KLen).
		Token("--track-short-seqs").
		Token("--poly-N-stretch").
		Flag("-o", set.GraphPrefix).
		IntFlag("-t", req.Threads).
		Flag("-f", "3").
		Flag("-w", req.WorkDir).
		Argv()
}

// IndexArgv marshals the reference-index construction invocation; it
// consumes the graph artifact stem produced by the previous stage.
func IndexArgv(req *config.BuildRequest, set artifact.Set) ([]string, error) {
	b := argv.NewBuilder(engine.IndexBuilder).
		Flag("-i", set.GraphPrefix).
		IntFlag("-k", req.KLen).
		IntFlag("-m", req.MLen).
		Token("--canonical-parsing")

	if !req.NoECTable {
		b.Token("--build-ec-table")
	}

	return b.
		Flag("-o", set.OutputPrefix).
		Flag("-d", req.WorkDir).
		IntFlag("-t", req.Threads).
		BoolFlag("--quiet", req.Quiet).
		Argv()
}

// PoisonArgv marshals the poison-table construction invocation against
// the just-built index.
func PoisonArgv(req *config.BuildRequest, set artifact.Set) ([]string, error) {
	return argv.NewBuilder(engine.PoisonBuilder).
		Flag("-i", set.OutputPrefix).
		IntFlag("-t", req.Threads).
		BoolFlag("--overwrite", req.Overwrite).
		PathsFlag("-d", req.DecoyPaths).
		BoolFlag("--quiet", req.Quiet).
		Argv()
}
