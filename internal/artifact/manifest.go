package artifact

import (
	"encoding/json"
	"os"
)

// WriteVersionManifest records the component-name-to-version mapping
// next to the final index. It is only called after the full pipeline
// has succeeded.
func WriteVersionManifest(set Set, versions map[string]string) error {
	data, err := json.MarshalIndent(versions, "", "  ")
	if err != nil {
		return &FilesystemError{Op: "encode version manifest", Path: set.VersionManifest, Err: err}
	}
	if err := os.WriteFile(set.VersionManifest, append(data, '\n'), 0o644); err != nil {
		return &FilesystemError{Op: "write version manifest", Path: set.VersionManifest, Err: err}
	}
	return nil
}
