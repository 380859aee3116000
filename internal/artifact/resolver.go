// Package artifact derives the on-disk artifact layout from a single
// output prefix and manages artifact lifecycle: reconciling
// pre-existing state, creating directories, post-build cleanup, and
// writing the provenance manifest.
package artifact

// graphInfix is appended to the output prefix to form the stem of the
// graph-stage artifacts.
const graphInfix = "_cfish"

// Set is the complete artifact layout for one output prefix. It is a
// pure function of the prefix: recomputed on demand, never persisted.
type Set struct {
	// OutputPrefix is the stem the index artifacts hang off.
	OutputPrefix string
	// GraphPrefix is the stem the graph artifacts hang off.
	GraphPrefix string

	// Graph-stage artifacts.
	SegmentFile   string
	SequenceFile  string
	StructureFile string

	// Index-stage artifacts.
	IndexFile     string
	ColorTable    string
	RefInfoFile   string
	ECTable       string
	SignatureFile string

	// VersionManifest records component versions after a successful build.
	VersionManifest string
}

// Resolve derives the full artifact set for an output prefix. It
// performs no I/O; existence is checked by callers.
func Resolve(outputPrefix string) Set {
	graphPrefix := outputPrefix + graphInfix
	return Set{
		OutputPrefix:    outputPrefix,
		GraphPrefix:     graphPrefix,
		SegmentFile:     graphPrefix + ".cf_seg",
		SequenceFile:    graphPrefix + ".cf_seq",
		StructureFile:   graphPrefix + ".json",
		IndexFile:       outputPrefix + ".sshash",
		ColorTable:      outputPrefix + ".ctab",
		RefInfoFile:     outputPrefix + ".refinfo",
		ECTable:         outputPrefix + ".ectab",
		SignatureFile:   outputPrefix + ".sigs.json",
		VersionManifest: outputPrefix + "_ver.json",
	}
}
