package fasta

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vk/refidx/internal/ctxlog"
)

// Signature identifies one reference record: its name, effective
// length, and the SHA-256 digest of the uppercased sequence.
type Signature struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	SHA256 string `json:"sha256"`
}

// signatureFile is the on-disk layout of the signature scan output.
type signatureFile struct {
	PolyAClipLength int         `json:"polya_clip_length,omitempty"`
	Records         []Signature `json:"records"`
}

// WriteSignatures scans the given reference FASTA files and writes a
// signature file recording every record. When polyAClip is positive,
// trailing poly-A runs of at least that length are excluded from the
// digest and the recorded length.
func WriteSignatures(ctx context.Context, inputs []string, outPath string, polyAClip int) error {
	logger := ctxlog.FromContext(ctx)

	out := signatureFile{PolyAClipLength: polyAClip}
	for _, input := range inputs {
		rc, err := openReader(input)
		if err != nil {
			return fmt.Errorf("failed to open reference file %s: %w", input, err)
		}

		err = streamRecords(ctx, rc, func(rec Record) error {
			seq := bytes.ToUpper(rec.Seq)
			if polyAClip > 0 {
				seq = clipPolyA(seq, polyAClip)
			}
			sum := sha256.Sum256(seq)
			out.Records = append(out.Records, Signature{
				Name:   rec.ID,
				Length: len(seq),
				SHA256: hex.EncodeToString(sum[:]),
			})
			return nil
		})
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to scan reference file %s: %w", input, err)
		}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write signature file %s: %w", outPath, err)
	}

	logger.Info("Wrote reference signatures.", "path", outPath, "records", len(out.Records))
	return nil
}

// clipPolyA removes a trailing run of 'A' bytes when the run is at
// least minRun long.
func clipPolyA(seq []byte, minRun int) []byte {
	end := len(seq)
	for end > 0 && seq[end-1] == 'A' {
		end--
	}
	if len(seq)-end >= minRun {
		return seq[:end]
	}
	return seq
}
