// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension recursively searches the given root path for all files ending
// with the specified extension. It returns a slice of their full paths.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// FindProfileFiles resolves profile paths into a deduplicated, sorted
// list of .hcl files. A path may name a single file or a directory,
// which is searched recursively.
func FindProfileFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var all []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing profile path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if _, ok := seen[f]; !ok {
					all = append(all, f)
					seen[f] = struct{}{}
				}
			}
			continue
		}

		if _, ok := seen[path]; !ok {
			all = append(all, path)
			seen[path] = struct{}{}
		}
	}

	sort.Strings(all)
	return all, nil
}
