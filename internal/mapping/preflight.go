package mapping

import (
	"fmt"
	"os"

	"github.com/vk/refidx/internal/pipeline"
)

// Preflight verifies that the index files a mapper will load exist
// next to the given prefix. The prefix must be a file stem, not an
// existing file; the `.ectab` table is only required when
// ambiguous-hit checking is active.
func Preflight(indexPrefix string, needECTable bool) error {
	if info, err := os.Stat(indexPrefix); err == nil && !info.IsDir() {
		return &pipeline.ConfigError{Reason: fmt.Sprintf(
			"the path %s was provided as the base path for the index, but it corresponds to a "+
				"specific existing file; provide the file stem (without the extension) instead",
			indexPrefix)}
	}

	suffixes := []string{"sshash", "ctab", "refinfo"}
	if needECTable {
		suffixes = append(suffixes, "ectab")
	}

	for _, suffix := range suffixes {
		required := indexPrefix + "." + suffix
		if _, err := os.Stat(required); err != nil {
			return &pipeline.InputError{Path: required}
		}
	}
	return nil
}
