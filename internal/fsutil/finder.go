// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FindFilesByExtension recursively searches root for files ending with one
// of the extensions and returns their paths in lexical order.
func FindFilesByExtension(root string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(path, extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Discover expands paths into the matching files they name or contain.
// Files given explicitly must carry one of the extensions. Results keep
// the order of paths and contain no duplicates.
func Discover(paths []string, extensions ...string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if !info.IsDir() {
			if !hasExtension(path, extensions) {
				return nil, fmt.Errorf("unsupported problem file %s, want one of %v", path, extensions)
			}
			add(path)
			continue
		}
		files, err := FindFilesByExtension(path, extensions...)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, want := range extensions {
		if ext == want {
			return true
		}
	}
	return false
}
