// Package sources finds the files a rewrite pass should visit.
package sources

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions is used when no extension list is configured.
var DefaultExtensions = []string{".cpp"}

// DefaultSkipDirs contains directory names never descended into.
var DefaultSkipDirs = []string{".git", ".hg", ".svn"}

// Find walks root recursively and returns every regular file whose name
// ends with one of exts, sorted. Directories named in skipDirs are pruned
// (the root itself is never skipped). Symlinked files are followed,
// symlinked directories are not. Any walk error aborts and is returned.
func Find(root string, exts, skipDirs []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !HasExtension(path, exts) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			// Linked files count when they point at a regular file.
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if !info.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}

// HasExtension reports whether path ends with any of exts. The match is
// case-sensitive.
func HasExtension(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Describe returns a short summary such as "3 .cpp, 1 .h".
func Describe(files []string, exts []string) string {
	counts := make(map[string]int)
	for _, f := range files {
		for _, ext := range exts {
			if strings.HasSuffix(f, ext) {
				counts[ext]++
				break
			}
		}
	}
	var parts []string
	for _, ext := range exts {
		if n := counts[ext]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, ext))
		}
	}
	return strings.Join(parts, ", ")
}
