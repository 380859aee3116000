package fasta

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFasta(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readSignatures(t *testing.T, path string) signatureFile {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out signatureFile
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestWriteSignatures_RecordsNameLengthAndDigest(t *testing.T) {
	dir := t.TempDir()
	in := writeFasta(t, dir, "a.fa", ">chr1 some description\nacgt\nACGT\n>chr2\nTTTT\n")
	out := filepath.Join(dir, "out.sigs.json")

	require.NoError(t, WriteSignatures(context.Background(), []string{in}, out, 0))

	sigs := readSignatures(t, out)
	require.Len(t, sigs.Records, 2)

	require.Equal(t, "chr1", sigs.Records[0].Name)
	require.Equal(t, 8, sigs.Records[0].Length)
	want := sha256.Sum256([]byte("ACGTACGT"))
	require.Equal(t, hex.EncodeToString(want[:]), sigs.Records[0].SHA256)

	require.Equal(t, "chr2", sigs.Records[1].Name)
	require.Equal(t, 4, sigs.Records[1].Length)
}

func TestWriteSignatures_PolyAClipping(t *testing.T) {
	dir := t.TempDir()
	in := writeFasta(t, dir, "a.fa", ">tx1\nACGTAAAAA\n>tx2\nACGTAA\n")
	out := filepath.Join(dir, "out.sigs.json")

	require.NoError(t, WriteSignatures(context.Background(), []string{in}, out, 5))

	sigs := readSignatures(t, out)
	require.Len(t, sigs.Records, 2)

	// tx1's tail run of 5 A's meets the threshold and is clipped.
	require.Equal(t, 4, sigs.Records[0].Length)
	want := sha256.Sum256([]byte("ACGT"))
	require.Equal(t, hex.EncodeToString(want[:]), sigs.Records[0].SHA256)

	// tx2's tail run of 2 A's is below the threshold and kept.
	require.Equal(t, 6, sigs.Records[1].Length)
}

func TestWriteSignatures_GzipInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.fa.gz")

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(">chr1\nACGT\n"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	out := filepath.Join(dir, "out.sigs.json")
	require.NoError(t, WriteSignatures(context.Background(), []string{path}, out, 0))

	sigs := readSignatures(t, out)
	require.Len(t, sigs.Records, 1)
	require.Equal(t, 4, sigs.Records[0].Length)
}

func TestWriteSignatures_MissingInputFails(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.sigs.json")

	err := WriteSignatures(context.Background(), []string{filepath.Join(dir, "nope.fa")}, out, 0)
	require.Error(t, err)
}
