package mapping

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/vk/refidx/internal/argv"
	"github.com/vk/refidx/internal/engine"
	"github.com/vk/refidx/internal/pipeline"
)

// Shared holds the mapping parameters common to every mapper.
type Shared struct {
	IndexPrefix string
	Threads     int
	OutputDir   string

	NoPoison          bool
	StructConstraints bool
	SkippingStrategy  string
	IgnoreAmbigHits   bool

	// MaxECCard is active exactly when ambiguous-hit checking is not
	// ignored.
	MaxECCard        int
	MaxHitOcc        int
	MaxHitOccRecover int
	MaxReadOcc       int

	Quiet bool
}

// CheckAmbigHits reports whether the equivalence classes of ambiguous
// k-mers are examined, which also decides whether the `.ectab` table
// must exist.
func (s *Shared) CheckAmbigHits() bool { return !s.IgnoreAmbigHits }

// validate applies the request checks every mapper shares.
func (s *Shared) validate() error {
	if s.Threads < 1 {
		return &pipeline.ConfigError{Reason: fmt.Sprintf(
			"the number of provided threads (%d) must be greater than 0", s.Threads)}
	}
	if ncpus := runtime.NumCPU(); s.Threads > ncpus {
		return &pipeline.ConfigError{Reason: fmt.Sprintf(
			"the number of provided threads (%d) should be <= the number of logical CPUs (%d)",
			s.Threads, ncpus)}
	}
	ok := false
	for _, strategy := range SkippingStrategies {
		if s.SkippingStrategy == strategy {
			ok = true
		}
	}
	if !ok {
		return &pipeline.ConfigError{Reason: fmt.Sprintf(
			"skipping strategy must be one of %v, got %q", SkippingStrategies, s.SkippingStrategy)}
	}
	return nil
}

// ambigTokens appends either the ignore flag or the cardinality cap.
func (s *Shared) ambigTokens(b *argv.Builder) {
	if s.IgnoreAmbigHits {
		b.Token("--ignore-ambig-hits")
	} else {
		b.IntFlag("--max-ec-card", s.MaxECCard)
	}
}

// tailTokens appends the occurrence caps shared by the SC and bulk
// mappers.
func (s *Shared) tailTokens(b *argv.Builder) {
	b.IntFlag("--max-hit-occ", s.MaxHitOcc).
		IntFlag("--max-hit-occ-recover", s.MaxHitOccRecover).
		IntFlag("--max-read-occ", s.MaxReadOcc)
}

// SCRequest maps reads for single-cell processing.
type SCRequest struct {
	Shared
	Geometry string
	Read1    []string
	Read2    []string
}

// Validate checks the request before any engine is invoked.
func (r *SCRequest) Validate() error {
	if err := r.Shared.validate(); err != nil {
		return err
	}
	if len(r.Read1) == 0 || len(r.Read2) == 0 {
		return &pipeline.ConfigError{Reason: "both read1 and read2 files must be provided"}
	}
	if r.Geometry == "" {
		return &pipeline.ConfigError{Reason: "a barcode/umi/read geometry must be provided"}
	}
	return nil
}

// Argv marshals the single-cell mapper invocation.
func (r *SCRequest) Argv() ([]string, error) {
	b := argv.NewBuilder(engine.SCMapper).
		Flag("-i", r.IndexPrefix).
		Flag("-g", r.Geometry).
		PathsFlag("-1", r.Read1).
		PathsFlag("-2", r.Read2).
		IntFlag("-t", r.Threads).
		Flag("-o", r.OutputDir)

	r.ambigTokens(b)
	b.BoolFlag("--no-poison", r.NoPoison).
		Flag("--skipping-strategy", r.SkippingStrategy).
		BoolFlag("--struct-constraints", r.StructConstraints)
	r.tailTokens(b)
	return b.BoolFlag("--quiet", r.Quiet).Argv()
}

// BulkRequest maps reads for bulk processing. Exactly one of Reads
// (unpaired) or the Read1/Read2 pair must be supplied.
type BulkRequest struct {
	Shared
	Read1 []string
	Read2 []string
	Reads []string
}

// Validate checks the request before any engine is invoked.
func (r *BulkRequest) Validate() error {
	if err := r.Shared.validate(); err != nil {
		return err
	}
	paired := len(r.Read1) > 0 || len(r.Read2) > 0
	if paired && len(r.Reads) > 0 {
		return &pipeline.ConfigError{Reason: "unpaired reads cannot be combined with read1/read2 pairs"}
	}
	if paired && (len(r.Read1) == 0 || len(r.Read2) == 0) {
		return &pipeline.ConfigError{Reason: "read1 and read2 must be provided together"}
	}
	if !paired && len(r.Reads) == 0 {
		return &pipeline.ConfigError{Reason: "either unpaired reads or read1/read2 pairs must be provided"}
	}
	return nil
}

// Argv marshals the bulk mapper invocation.
func (r *BulkRequest) Argv() ([]string, error) {
	b := argv.NewBuilder(engine.BulkMapper).
		Flag("-i", r.IndexPrefix).
		IntFlag("-t", r.Threads).
		Flag("-o", r.OutputDir)

	if len(r.Reads) > 0 {
		b.PathsFlag("-r", r.Reads)
	} else {
		b.PathsFlag("-1", r.Read1).PathsFlag("-2", r.Read2)
	}

	r.ambigTokens(b)
	b.BoolFlag("--no-poison", r.NoPoison).
		Flag("--skipping-strategy", r.SkippingStrategy).
		BoolFlag("--struct-constraints", r.StructConstraints)
	r.tailTokens(b)
	return b.BoolFlag("--quiet", r.Quiet).Argv()
}

// ATACRequest maps reads for single-cell ATAC processing.
type ATACRequest struct {
	Shared
	Read1    []string
	Read2    []string
	Reads    []string
	Barcodes []string

	SAMFormat       bool
	BEDFormat       bool
	UseChr          bool
	NoTn5Shift      bool
	CheckKmerOrphan bool

	Threshold        float64
	BinSize          int
	BinOverlap       int
	BCLen            int
	EndCacheCapacity int
}

// Validate checks the request before any engine is invoked.
func (r *ATACRequest) Validate() error {
	if err := r.Shared.validate(); err != nil {
		return err
	}
	if len(r.Barcodes) == 0 {
		return &pipeline.ConfigError{Reason: "barcode files must be provided"}
	}
	paired := len(r.Read1) > 0 || len(r.Read2) > 0
	if paired && len(r.Reads) > 0 {
		return &pipeline.ConfigError{Reason: "unpaired reads cannot be combined with read1/read2 pairs"}
	}
	if paired && (len(r.Read1) == 0 || len(r.Read2) == 0) {
		return &pipeline.ConfigError{Reason: "read1 and read2 must be provided together"}
	}
	if !paired && len(r.Reads) == 0 {
		return &pipeline.ConfigError{Reason: "either unpaired reads or read1/read2 pairs must be provided"}
	}
	return nil
}

// Argv marshals the ATAC mapper invocation. The ATAC mapper loads the
// index without the equivalence-class table, so no ambiguous-hit
// tokens are emitted.
func (r *ATACRequest) Argv() ([]string, error) {
	b := argv.NewBuilder(engine.ATACMapper).
		Flag("-i", r.IndexPrefix).
		IntFlag("-t", r.Threads).
		Flag("-o", r.OutputDir)

	if len(r.Reads) > 0 {
		b.PathsFlag("-r", r.Reads)
	} else {
		b.PathsFlag("-1", r.Read1).PathsFlag("-2", r.Read2)
	}
	b.PathsFlag("-b", r.Barcodes)

	b.BoolFlag("--no-poison", r.NoPoison).
		Flag("--skipping-strategy", r.SkippingStrategy).
		BoolFlag("--struct-constraints", r.StructConstraints).
		BoolFlag("--bed-format", r.BEDFormat).
		BoolFlag("--use-chr", r.UseChr).
		BoolFlag("--sam-format", r.SAMFormat).
		BoolFlag("--kmers-orphans", r.CheckKmerOrphan).
		Flag("--thr", formatThreshold(r.Threshold))

	if r.NoTn5Shift {
		b.Flag("--tn5-shift", "false")
	}

	return b.
		IntFlag("--bin-size", r.BinSize).
		IntFlag("--bin-overlap", r.BinOverlap).
		IntFlag("--bclen", r.BCLen).
		IntFlag("--end-cache-capacity", r.EndCacheCapacity).
		BoolFlag("--quiet", r.Quiet).
		Argv()
}

// formatThreshold renders the pseudoalignment threshold without
// trailing zeros.
func formatThreshold(thr float64) string {
	return strconv.FormatFloat(thr, 'g', -1, 64)
}
