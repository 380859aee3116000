package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestReconcile_StructureWithoutSegSeqIsConflict(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))
	touch(t, set.StructureFile)

	err := Reconcile(context.Background(), set, false)
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, set.StructureFile, conflict.StructureFile)
}

func TestReconcile_CompleteGraphStateIsAccepted(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))
	touch(t, set.StructureFile)
	touch(t, set.SegmentFile)
	touch(t, set.SequenceFile)

	require.NoError(t, Reconcile(context.Background(), set, false))

	// Without overwrite, nothing is removed.
	_, err := os.Stat(set.StructureFile)
	require.NoError(t, err)
}

func TestReconcile_OverwriteRemovesStaleArtifacts(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))
	touch(t, set.StructureFile)
	touch(t, set.SegmentFile)
	touch(t, set.SequenceFile)

	require.NoError(t, Reconcile(context.Background(), set, true))

	for _, path := range []string{set.StructureFile, set.SegmentFile, set.SequenceFile} {
		_, err := os.Stat(path)
		require.True(t, os.IsNotExist(err), "expected %s to be removed", path)
	}
}

func TestEnsureDirs_CreatesWorkDirAndOutputParent(t *testing.T) {
	dir := t.TempDir()
	workDir := filepath.Join(dir, "work", "tmp")
	set := Resolve(filepath.Join(dir, "idx", "out"))

	require.NoError(t, EnsureDirs(context.Background(), workDir, set))

	info, err := os.Stat(workDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	info, err = os.Stat(filepath.Join(dir, "idx"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestCleanupIntermediate_RetainsStructureFile(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))
	touch(t, set.StructureFile)
	touch(t, set.SegmentFile)
	touch(t, set.SequenceFile)

	CleanupIntermediate(context.Background(), set)

	_, err := os.Stat(set.SegmentFile)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(set.SequenceFile)
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(set.StructureFile)
	require.NoError(t, err)
}

func TestCleanupIntermediate_MissingFilesAreNonFatal(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))

	// Nothing exists; cleanup must not panic or create anything.
	CleanupIntermediate(context.Background(), set)
}

func TestWriteVersionManifest(t *testing.T) {
	dir := t.TempDir()
	set := Resolve(filepath.Join(dir, "out"))

	require.NoError(t, WriteVersionManifest(set, map[string]string{
		"refidx":           "0.7.0",
		"cdbg_builder":     "2.1.0",
		"ref_index_builder": "3.0.1",
	}))

	data, err := os.ReadFile(set.VersionManifest)
	require.NoError(t, err)
	require.Contains(t, string(data), `"refidx": "0.7.0"`)
}
