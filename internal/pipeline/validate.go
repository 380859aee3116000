package pipeline

import (
	"fmt"
	"os"
	"runtime"

	"github.com/vk/refidx/internal/config"
)

// ValidateBuild gates the pipeline: it checks a build request for
// structural and numeric validity before any engine runs, failing fast
// on the first violation. The only I/O performed is existence checks
// of the declared decoy paths.
func ValidateBuild(req *config.BuildRequest) error {
	if req.Threads < 1 {
		return &ConfigError{Reason: fmt.Sprintf(
			"the number of provided threads (%d) must be greater than 0", req.Threads)}
	}
	if ncpus := runtime.NumCPU(); req.Threads > ncpus {
		return &ConfigError{Reason: fmt.Sprintf(
			"the number of provided threads (%d) should be <= the number of logical CPUs (%d)",
			req.Threads, ncpus)}
	}
	// The CLI's klen flag gate performs the same checks, but requests
	// can also arrive from a profile, so re-check here.
	if req.KLen < 1 || req.KLen > 31 {
		return &ConfigError{Reason: fmt.Sprintf(
			"k-mer length (%d) must be between 1 and 31", req.KLen)}
	}
	if req.KLen%2 == 0 {
		return &ConfigError{Reason: fmt.Sprintf(
			"k-mer length (%d) must be odd", req.KLen)}
	}
	if req.MLen < 0 {
		return &ConfigError{Reason: fmt.Sprintf(
			"minimizer length (%d) must be >= 0", req.MLen)}
	}
	if req.MLen >= req.KLen {
		return &ConfigError{Reason: fmt.Sprintf(
			"minimizer length (%d) must be < k-mer length (%d)", req.MLen, req.KLen)}
	}

	for _, decoy := range req.DecoyPaths {
		if _, err := os.Stat(decoy); err != nil {
			if os.IsNotExist(err) {
				return &InputError{Path: decoy}
			}
			return &InputError{Path: decoy, Err: err}
		}
	}

	// The CLI layer enforces mutual exclusivity of the reference-input
	// forms; re-check before constructing the graph stage's arguments.
	forms := 0
	if len(req.RefSeqs) > 0 {
		forms++
	}
	if len(req.RefLists) > 0 {
		forms++
	}
	if len(req.RefDirs) > 0 {
		forms++
	}
	if forms != 1 {
		return &ConfigError{Reason: "exactly one reference input (via ref-seqs, ref-lists, or ref-dirs) must be provided"}
	}

	return nil
}
