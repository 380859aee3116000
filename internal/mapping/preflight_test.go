package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/refidx/internal/pipeline"
)

func writeIndexFiles(t *testing.T, prefix string, suffixes ...string) {
	t.Helper()
	for _, s := range suffixes {
		require.NoError(t, os.WriteFile(prefix+"."+s, []byte("x"), 0o644))
	}
}

func TestPreflight_AllFilesPresent(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	writeIndexFiles(t, prefix, "sshash", "ctab", "refinfo", "ectab")

	require.NoError(t, Preflight(prefix, true))
	require.NoError(t, Preflight(prefix, false))
}

func TestPreflight_MissingECTabOnlyMattersWhenChecked(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	writeIndexFiles(t, prefix, "sshash", "ctab", "refinfo")

	require.NoError(t, Preflight(prefix, false))

	err := Preflight(prefix, true)
	var inErr *pipeline.InputError
	require.ErrorAs(t, err, &inErr)
	require.Equal(t, prefix+".ectab", inErr.Path)
}

func TestPreflight_MissingCoreFile(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "out")
	writeIndexFiles(t, prefix, "sshash", "refinfo")

	err := Preflight(prefix, false)
	var inErr *pipeline.InputError
	require.ErrorAs(t, err, &inErr)
	require.Equal(t, prefix+".ctab", inErr.Path)
}

func TestPreflight_PrefixNamingExistingFileIsRejected(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(prefix, []byte("x"), 0o644))

	err := Preflight(prefix, false)
	var cfgErr *pipeline.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	require.Contains(t, cfgErr.Error(), "file stem")
}
