package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/refidx/internal/ctxlog"
)

// ConflictError reports an inconsistent pre-existing artifact state
// that the pipeline refuses to build over without --overwrite.
type ConflictError struct {
	StructureFile string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf(
		"the output prefix already corresponds to an existing graph structure file %s "+
			"but the matching seg and seq files do not exist; delete the structure file, "+
			"choose another output prefix, or pass --overwrite",
		e.StructureFile,
	)
}

// FilesystemError reports a failed filesystem mutation that must abort
// the pipeline before any engine runs.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *FilesystemError) Unwrap() error { return e.Err }

// Reconcile inspects the graph artifacts already on disk and either
// clears them (overwrite) or refuses to proceed over an inconsistent
// state. With overwrite set, a deletion failure is fatal: overwrite was
// explicitly requested and stale state must not silently persist.
func Reconcile(ctx context.Context, set Set, overwrite bool) error {
	logger := ctxlog.FromContext(ctx)

	if overwrite {
		for _, path := range []string{set.StructureFile, set.SegmentFile, set.SequenceFile} {
			if !exists(path) {
				continue
			}
			if err := os.Remove(path); err != nil {
				return &FilesystemError{Op: "remove stale artifact", Path: path, Err: err}
			}
			logger.Debug("Removed stale graph artifact.", "path", path)
		}
		return nil
	}

	if exists(set.StructureFile) && (!exists(set.SequenceFile) || !exists(set.SegmentFile)) {
		logger.Warn("Output prefix corresponds to an existing graph structure file.", "path", set.StructureFile)
		logger.Warn("The corresponding seq and seg files do not exist; refusing to build over it without --overwrite.")
		return &ConflictError{StructureFile: set.StructureFile}
	}
	return nil
}

// EnsureDirs creates the work directory and the parent directory of
// the output prefix if they do not exist yet. A creation failure is
// fatal and aborts before any engine is invoked.
func EnsureDirs(ctx context.Context, workDir string, set Set) error {
	logger := ctxlog.FromContext(ctx)

	if exists(workDir) {
		logger.Info("Using existing work directory for temporary files.", "path", workDir)
	} else {
		if err := os.MkdirAll(workDir, 0o755); err != nil {
			return &FilesystemError{Op: "create work directory", Path: workDir, Err: err}
		}
		logger.Info("Created work directory for temporary files.", "path", workDir)
	}

	if parent := filepath.Dir(set.GraphPrefix); parent != "." {
		if !exists(parent) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return &FilesystemError{Op: "create output directory", Path: parent, Err: err}
			}
			logger.Info("Output directory did not already exist; created it.", "path", parent)
		}
	}
	return nil
}

// CleanupIntermediate removes the graph segment and tiling files after
// a successful build. Deletions are independent and best-effort: a
// failure is logged as a warning and does not change the build's
// outcome. The structure file is always retained; it is small and
// carries provenance about the indexed references.
func CleanupIntermediate(ctx context.Context, set Set) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Removing intermediate graph files.")

	if err := os.Remove(set.SegmentFile); err != nil {
		logger.Warn("Cannot remove segment file.", "path", set.SegmentFile, "error", err)
	} else {
		logger.Info("Removed segment file.", "path", set.SegmentFile)
	}

	if err := os.Remove(set.SequenceFile); err != nil {
		logger.Warn("Cannot remove tiling file.", "path", set.SequenceFile, "error", err)
	} else {
		logger.Info("Removed tiling file.", "path", set.SequenceFile)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
