// Package cli parses command-line arguments into an app.Config. Only
// syntax lives here; the validation rules that gate pipeline execution
// belong to the pipeline and mapping packages.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vk/refidx/internal/app"
	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/mapping"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usageText = `
refidx - indexing and mapping to compacted colored de Bruijn graphs.

Usage:
  refidx [options] <command> [command options]

Commands:
  build     Index a reference sequence
  map-sc    Map reads for single-cell processing
  map-bulk  Map reads for bulk processing
  map-atac  Map reads for single-cell ATAC processing

Options:
`

// pathList is a flag.Value accepting a ',' separated list of paths.
type pathList struct {
	paths *[]string
}

func (p *pathList) String() string {
	if p.paths == nil {
		return ""
	}
	return strings.Join(*p.paths, ",")
}

func (p *pathList) Set(s string) error {
	if s == "" {
		*p.paths = nil
		return nil
	}
	*p.paths = strings.Split(s, ",")
	return nil
}

// klenValue is a flag.Value enforcing the k-mer length contract at
// parse time: it must be odd and <= 31.
type klenValue struct {
	k *int
}

func (v *klenValue) String() string {
	if v.k == nil {
		return ""
	}
	return strconv.Itoa(*v.k)
}

func (v *klenValue) Set(s string) error {
	k, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("`%s` can't be parsed as a number", s)
	}
	if k < 1 {
		return fmt.Errorf("klen = %d must be >= 1", k)
	}
	if k > 31 {
		return fmt.Errorf("klen = %d must be <= 31", k)
	}
	if k&1 == 0 {
		return fmt.Errorf("klen = %d must be odd", k)
	}
	*v.k = k
	return nil
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("refidx", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	quietFlag := flagSet.Bool("quiet", false, "Be quiet (warnings and errors only).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg := app.Config{
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Quiet:     *quietFlag,
	}

	command := flagSet.Arg(0)
	rest := flagSet.Args()[1:]

	var err error
	switch command {
	case "build":
		err = parseBuild(&cfg, rest, output)
	case "map-sc":
		err = parseMapSC(&cfg, rest, output)
	case "map-bulk":
		err = parseMapBulk(&cfg, rest, output)
	case "map-atac":
		err = parseMapATAC(&cfg, rest, output)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", command)}
	}
	if err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg.Command = command

	validated, cfgErr := app.NewConfig(cfg)
	if cfgErr != nil {
		return nil, false, &ExitError{Code: 2, Message: cfgErr.Error()}
	}
	return validated, false, nil
}

// parseBuild fills the build request from flags, recording which flags
// were set explicitly so profile merging can tell them apart from
// defaults.
func parseBuild(cfg *app.Config, args []string, output io.Writer) error {
	flagSet := flag.NewFlagSet("refidx build", flag.ContinueOnError)
	flagSet.SetOutput(output)

	req := &config.BuildRequest{
		KLen:    31,
		MLen:    19,
		WorkDir: config.DefaultWorkDir,
		Seed:    config.DefaultSeed,
	}

	flagSet.Var(&pathList{&req.RefSeqs}, "ref-seqs", "',' separated list of reference FASTA files.")
	flagSet.Var(&pathList{&req.RefLists}, "ref-lists", "',' separated list of files (each listing input FASTA files).")
	flagSet.Var(&pathList{&req.RefDirs}, "ref-dirs", "',' separated list of directories of FASTA files (non-recursive).")
	flagSet.Var(&klenValue{&req.KLen}, "klen", "Length of k-mer to use; must be <= 31 and odd.")
	flagSet.IntVar(&req.MLen, "mlen", req.MLen, "Length of minimizer to use; must be < klen.")
	flagSet.IntVar(&req.Threads, "threads", 0, "Number of threads to use.")
	flagSet.StringVar(&req.OutputPrefix, "output", "", "Output file stem.")
	flagSet.StringVar(&req.WorkDir, "work-dir", req.WorkDir, "Working directory for temporary files.")
	flagSet.BoolVar(&req.Overwrite, "overwrite", false, "Overwrite an existing index at the same output path.")
	flagSet.BoolVar(&req.KeepIntermediate, "keep-intermediate-dbg", false, "Retain the intermediate graph files (default is to remove them).")
	flagSet.BoolVar(&req.NoECTable, "no-ec-table", false, "Skip construction of the equivalence class lookup table (not recommended).")
	flagSet.Var(&pathList{&req.DecoyPaths}, "decoy-paths", "',' separated list of decoy sequence files for poison k-mer information.")
	flagSet.Uint64Var(&req.Seed, "seed", req.Seed, "Index construction seed (useful if empty buckets occur).")
	flagSet.IntVar(&req.PolyAClipLength, "polya-clip-length", 0, "Clip trailing poly-A tails at least this long (0 disables clipping).")
	addProfileFlag(flagSet, cfg)

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	req.Quiet = cfg.Quiet
	cfg.Build = req
	cfg.BuildFlagsSet = make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		cfg.BuildFlagsSet[f.Name] = true
	})
	return nil
}

func parseMapSC(cfg *app.Config, args []string, output io.Writer) error {
	flagSet := flag.NewFlagSet("refidx map-sc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	req := &mapping.SCRequest{Shared: sharedDefaults(cfg)}
	addSharedFlags(flagSet, &req.Shared)
	flagSet.StringVar(&req.Geometry, "geometry", "", "Geometry of barcode, umi and read.")
	flagSet.Var(&pathList{&req.Read1}, "read1", "',' separated list of read 1 files.")
	flagSet.Var(&pathList{&req.Read2}, "read2", "',' separated list of read 2 files.")
	addProfileFlag(flagSet, cfg)

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	cfg.MapSC = req
	return nil
}

func parseMapBulk(cfg *app.Config, args []string, output io.Writer) error {
	flagSet := flag.NewFlagSet("refidx map-bulk", flag.ContinueOnError)
	flagSet.SetOutput(output)

	req := &mapping.BulkRequest{Shared: sharedDefaults(cfg)}
	addSharedFlags(flagSet, &req.Shared)
	flagSet.Var(&pathList{&req.Read1}, "read1", "',' separated list of read 1 files.")
	flagSet.Var(&pathList{&req.Read2}, "read2", "',' separated list of read 2 files.")
	flagSet.Var(&pathList{&req.Reads}, "reads", "',' separated list of unpaired read files.")
	addProfileFlag(flagSet, cfg)

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	cfg.MapBulk = req
	return nil
}

func parseMapATAC(cfg *app.Config, args []string, output io.Writer) error {
	flagSet := flag.NewFlagSet("refidx map-atac", flag.ContinueOnError)
	flagSet.SetOutput(output)

	req := &mapping.ATACRequest{
		Shared:           sharedDefaults(cfg),
		Threshold:        mapping.DefaultThreshold,
		BinSize:          mapping.DefaultBinSize,
		BinOverlap:       mapping.DefaultBinOverlap,
		BCLen:            mapping.DefaultBCLen,
		EndCacheCapacity: mapping.DefaultEndCacheCapacity,
	}
	addSharedFlags(flagSet, &req.Shared)
	flagSet.Var(&pathList{&req.Read1}, "read1", "',' separated list of read 1 files.")
	flagSet.Var(&pathList{&req.Read2}, "read2", "',' separated list of read 2 files.")
	flagSet.Var(&pathList{&req.Reads}, "reads", "',' separated list of unpaired read files.")
	flagSet.Var(&pathList{&req.Barcodes}, "barcodes", "',' separated list of barcode files.")
	flagSet.BoolVar(&req.SAMFormat, "sam-format", false, "Output mappings in SAM format.")
	flagSet.BoolVar(&req.BEDFormat, "bed-format", false, "Output mappings in BED format.")
	flagSet.BoolVar(&req.UseChr, "use-chr", false, "Use chromosomes as color.")
	flagSet.BoolVar(&req.NoTn5Shift, "no-tn5-shift", false, "Do not apply Tn5 shift to mapped positions.")
	flagSet.BoolVar(&req.CheckKmerOrphan, "check-kmer-orphan", false, "Reject pairs where the unmapped mate still has a mapping k-mer.")
	flagSet.Float64Var(&req.Threshold, "thr", req.Threshold, "Threshold for pseudoalignment.")
	flagSet.IntVar(&req.BinSize, "bin-size", req.BinSize, "Size of virtual color bins.")
	flagSet.IntVar(&req.BinOverlap, "bin-overlap", req.BinOverlap, "Overlap between virtual color bins.")
	flagSet.IntVar(&req.BCLen, "bclen", req.BCLen, "Length of the barcode sequence.")
	flagSet.IntVar(&req.EndCacheCapacity, "end-cache-capacity", req.EndCacheCapacity, "Capacity of the unitig-end k-mer cache.")
	addProfileFlag(flagSet, cfg)

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	cfg.MapATAC = req
	return nil
}

// addProfileFlag binds the profile path under both its long and short
// names. Map commands take a profile too: its engines block overrides
// the mapper binaries.
func addProfileFlag(flagSet *flag.FlagSet, cfg *app.Config) {
	flagSet.StringVar(&cfg.ProfilePath, "profile", "", "Path to an HCL profile.")
	flagSet.StringVar(&cfg.ProfilePath, "p", "", "Path to an HCL profile (shorthand).")
}

// sharedDefaults seeds the parameters every mapper shares.
func sharedDefaults(cfg *app.Config) mapping.Shared {
	return mapping.Shared{
		Threads:          mapping.DefaultThreads,
		SkippingStrategy: mapping.DefaultSkippingStrategy,
		MaxECCard:        mapping.DefaultMaxECCard,
		MaxHitOcc:        mapping.DefaultMaxHitOcc,
		MaxHitOccRecover: mapping.DefaultMaxHitOccRecover,
		MaxReadOcc:       mapping.DefaultMaxReadOcc,
		Quiet:            cfg.Quiet,
	}
}

// addSharedFlags binds the parameters every mapper shares.
func addSharedFlags(flagSet *flag.FlagSet, s *mapping.Shared) {
	flagSet.StringVar(&s.IndexPrefix, "index", "", "Input index prefix.")
	flagSet.IntVar(&s.Threads, "threads", s.Threads, "Number of threads to use.")
	flagSet.StringVar(&s.OutputDir, "output", "", "Path to output directory.")
	flagSet.BoolVar(&s.NoPoison, "no-poison", false, "Do not consider poison k-mers even if the index contains them.")
	flagSet.BoolVar(&s.StructConstraints, "struct-constraints", false, "Apply structural constraints when mapping.")
	flagSet.StringVar(&s.SkippingStrategy, "skipping-strategy", s.SkippingStrategy, "Skipping strategy for k-mer collection ('permissive' or 'strict').")
	flagSet.BoolVar(&s.IgnoreAmbigHits, "ignore-ambig-hits", false, "Skip equivalence-class checking of overly ambiguous k-mers.")
	flagSet.IntVar(&s.MaxECCard, "max-ec-card", s.MaxECCard, "Maximum cardinality equivalence class to examine.")
	flagSet.IntVar(&s.MaxHitOcc, "max-hit-occ", s.MaxHitOcc, "First-pass k-mer occurrence cap.")
	flagSet.IntVar(&s.MaxHitOccRecover, "max-hit-occ-recover", s.MaxHitOccRecover, "Second-pass k-mer occurrence cap.")
	flagSet.IntVar(&s.MaxReadOcc, "max-read-occ", s.MaxReadOcc, "Reads with more mappings than this are not reported.")
}
