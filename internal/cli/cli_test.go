package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/refidx/internal/config"
	"github.com/vk/refidx/internal/mapping"
)

func TestParse_NoArgsPrintsUsage(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse(nil, out)

	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "Usage:")
}

func TestParse_UnknownCommand(t *testing.T) {
	_, _, err := Parse([]string{"frobnicate"}, &bytes.Buffer{})

	require.Error(t, err)
	exitErr, ok := err.(*ExitError)
	require.True(t, ok)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "unknown command")
}

func TestParse_BuildFlags(t *testing.T) {
	args := []string{
		"build",
		"--ref-seqs", "a.fa,b.fa",
		"--klen", "27",
		"--mlen", "15",
		"--threads", "4",
		"--output", "idx/out",
		"--decoy-paths", "decoy.fa",
		"--overwrite",
		"--keep-intermediate-dbg",
		"--profile", "profile.hcl",
	}

	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, "build", cfg.Command)
	require.Equal(t, "profile.hcl", cfg.ProfilePath)

	req := cfg.Build
	require.Equal(t, []string{"a.fa", "b.fa"}, req.RefSeqs)
	require.Equal(t, 27, req.KLen)
	require.Equal(t, 15, req.MLen)
	require.Equal(t, 4, req.Threads)
	require.Equal(t, "idx/out", req.OutputPrefix)
	require.Equal(t, []string{"decoy.fa"}, req.DecoyPaths)
	require.True(t, req.Overwrite)
	require.True(t, req.KeepIntermediate)

	require.True(t, cfg.BuildFlagsSet["klen"])
	require.True(t, cfg.BuildFlagsSet["output"])
	require.False(t, cfg.BuildFlagsSet["work-dir"])
}

func TestParse_BuildDefaults(t *testing.T) {
	cfg, _, err := Parse([]string{"build", "--output", "out"}, &bytes.Buffer{})
	require.NoError(t, err)

	req := cfg.Build
	require.Equal(t, 31, req.KLen)
	require.Equal(t, 19, req.MLen)
	require.Equal(t, config.DefaultWorkDir, req.WorkDir)
	require.Equal(t, config.DefaultSeed, req.Seed)
}

func TestParse_EvenKlenIsRejected(t *testing.T) {
	_, _, err := Parse([]string{"build", "--klen", "30", "--output", "out"}, &bytes.Buffer{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "must be odd")
}

func TestParse_OversizedKlenIsRejected(t *testing.T) {
	_, _, err := Parse([]string{"build", "--klen", "33", "--output", "out"}, &bytes.Buffer{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "must be <= 31")
}

func TestParse_QuietPropagatesToRequests(t *testing.T) {
	cfg, _, err := Parse([]string{"--quiet", "map-sc", "--index", "idx", "--geometry", "chromium_v3",
		"--read1", "r1.fq", "--read2", "r2.fq"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.True(t, cfg.Quiet)
	require.True(t, cfg.MapSC.Shared.Quiet)
}

func TestParse_MapSCDefaults(t *testing.T) {
	cfg, _, err := Parse([]string{"map-sc", "--index", "idx", "--geometry", "chromium_v3",
		"--read1", "r1.fq", "--read2", "r2.fq"}, &bytes.Buffer{})
	require.NoError(t, err)

	req := cfg.MapSC
	require.Equal(t, "idx", req.IndexPrefix)
	require.Equal(t, []string{"r1.fq"}, req.Read1)
	require.Equal(t, mapping.DefaultThreads, req.Threads)
	require.Equal(t, mapping.DefaultSkippingStrategy, req.SkippingStrategy)
	require.Equal(t, mapping.DefaultMaxECCard, req.MaxECCard)
	require.Equal(t, mapping.DefaultMaxReadOcc, req.MaxReadOcc)
}

func TestParse_MapATACDefaults(t *testing.T) {
	cfg, _, err := Parse([]string{"map-atac", "--index", "idx",
		"--read1", "r1.fq", "--read2", "r2.fq", "--barcodes", "bc.fq"}, &bytes.Buffer{})
	require.NoError(t, err)

	req := cfg.MapATAC
	require.Equal(t, []string{"bc.fq"}, req.Barcodes)
	require.InDelta(t, mapping.DefaultThreshold, req.Threshold, 1e-9)
	require.Equal(t, mapping.DefaultBinSize, req.BinSize)
	require.Equal(t, mapping.DefaultBinOverlap, req.BinOverlap)
	require.Equal(t, mapping.DefaultBCLen, req.BCLen)
	require.Equal(t, mapping.DefaultEndCacheCapacity, req.EndCacheCapacity)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	_, _, err := Parse([]string{"--log-format", "xml", "build", "--output", "out"}, &bytes.Buffer{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log-format")
}

func TestParse_ProfileFlagOnEveryCommand(t *testing.T) {
	cases := [][]string{
		{"build", "--profile", "prof.hcl", "--output", "out"},
		{"build", "-p", "prof.hcl", "--output", "out"},
		{"map-sc", "-p", "prof.hcl", "--index", "idx", "--geometry", "chromium_v3",
			"--read1", "r1.fq", "--read2", "r2.fq"},
		{"map-bulk", "--profile", "prof.hcl", "--index", "idx", "--reads", "r.fq"},
		{"map-atac", "-p", "prof.hcl", "--index", "idx",
			"--read1", "r1.fq", "--read2", "r2.fq", "--barcodes", "bc.fq"},
	}

	for _, args := range cases {
		cfg, _, err := Parse(args, &bytes.Buffer{})
		require.NoError(t, err, "args=%v", args)
		require.Equal(t, "prof.hcl", cfg.ProfilePath, "args=%v", args)
	}
}

func TestParse_NegativeKlenIsRejected(t *testing.T) {
	_, _, err := Parse([]string{"build", "--klen", "-3", "--output", "out"}, &bytes.Buffer{})

	require.Error(t, err)
	require.Contains(t, err.Error(), "must be >= 1")
}

func TestParse_MapBulkUnpairedReads(t *testing.T) {
	cfg, _, err := Parse([]string{"map-bulk", "--index", "idx", "--reads", "r.fq,s.fq"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, []string{"r.fq", "s.fq"}, cfg.MapBulk.Reads)
	require.Empty(t, cfg.MapBulk.Read1)
}
