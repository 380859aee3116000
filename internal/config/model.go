package config

// DefaultWorkDir is where temporary artifacts are placed when no work
// directory is configured.
const DefaultWorkDir = "./workdir.noindex"

// DefaultSeed is the index-construction seed forwarded to the
// reference-index engine when none is configured.
const DefaultSeed uint64 = 1

// BuildRequest describes one index build. Exactly one of RefSeqs,
// RefLists, and RefDirs must be non-empty; the CLI layer enforces the
// exclusivity and the pipeline re-checks it before running.
type BuildRequest struct {
	// RefSeqs lists reference FASTA files to index directly.
	RefSeqs []string
	// RefLists lists files which each name input FASTA files, one per line.
	RefLists []string
	// RefDirs lists directories whose FASTA files are indexed (non-recursively).
	RefDirs []string

	// KLen is the k-mer length; must be odd and <= 31.
	KLen int
	// MLen is the minimizer length; must be < KLen.
	MLen int
	// Threads is forwarded to every engine; must be between 1 and the
	// logical CPU count.
	Threads int

	// OutputPrefix is the file stem all artifacts are derived from.
	OutputPrefix string
	// WorkDir holds temporary files; created if absent.
	WorkDir string

	// Overwrite removes stale graph artifacts at the output prefix
	// before building.
	Overwrite bool
	// KeepIntermediate retains the reduced-format graph files that
	// are otherwise removed after a successful build.
	KeepIntermediate bool
	// NoECTable skips construction of the equivalence-class lookup
	// table (not recommended).
	NoECTable bool

	// DecoyPaths optionally names decoy sequence files used to insert
	// poison k-mer information into the index.
	DecoyPaths []string

	// Seed is the index-construction seed; useful if empty buckets occur.
	Seed uint64

	// PolyAClipLength, when positive, clips trailing poly-A runs of at
	// least this length from reference records during the signature scan.
	PolyAClipLength int

	// Quiet suppresses informational output from the engines that
	// support it.
	Quiet bool
}

// Model is the unified representation of a loaded profile: an optional
// build request plus binary-path overrides for the process-launching
// engine adapters.
type Model struct {
	Build   *BuildRequest
	Engines map[string]string
}
