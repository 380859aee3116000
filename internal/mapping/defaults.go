// Package mapping dispatches read files to one of the mapping engines
// (bulk, single-cell, single-cell ATAC) against a built index: it
// validates the request, preflights the index artifacts the mapper
// will need, and marshals the engine's argv.
package mapping

// Default mapping parameters shared across the mapping engines.
const (
	// DefaultMaxECCard caps the cardinality of equivalence classes
	// examined for ambiguous hits.
	DefaultMaxECCard = 4096
	// DefaultMaxHitOcc is the first-pass k-mer occurrence cap.
	DefaultMaxHitOcc = 256
	// DefaultMaxHitOccRecover is the second-pass occurrence cap used
	// when every k-mer exceeds DefaultMaxHitOcc.
	DefaultMaxHitOccRecover = 1024
	// DefaultMaxReadOcc suppresses reporting for reads mapping to more
	// locations than this.
	DefaultMaxReadOcc = 2500
	// DefaultSkippingStrategy is the k-mer collection strategy.
	DefaultSkippingStrategy = "permissive"
	// DefaultThreshold is the pseudoalignment score threshold (ATAC).
	DefaultThreshold = 0.7
	// DefaultBinSize is the virtual-color bin size (ATAC).
	DefaultBinSize = 1000
	// DefaultBinOverlap is the virtual-color bin overlap (ATAC).
	DefaultBinOverlap = 300
	// DefaultBCLen is the barcode length (ATAC).
	DefaultBCLen = 16
	// DefaultEndCacheCapacity sizes the unitig-end k-mer cache (ATAC).
	DefaultEndCacheCapacity = 5000000
	// DefaultThreads is the mapper thread count when none is given.
	DefaultThreads = 16
)

// SkippingStrategies enumerates the accepted --skipping-strategy values.
var SkippingStrategies = []string{"permissive", "strict"}
