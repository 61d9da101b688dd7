// Package rewrite turns quoted string literals in source files into
// localization calls, one line at a time.
//
// A line is rewritten only when at least one of its quoted segments has a
// translation; any other line, and every line matched by the exclusion
// filter, is written back exactly as it was read, terminator included.
package rewrite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/chlang/filter"
)

// ErrFileAccess marks failures to read or write the translation file, the
// root directory or any candidate file.
var ErrFileAccess = errors.New("file access error")

// Result describes the outcome of rewriting one file.
type Result struct {
	Path string
	// Changed is true when at least one line was translated.
	Changed bool
	// Lines holds the output, one element per input line with its
	// original terminator.
	Lines []string
	// Translated counts the rewritten lines.
	Translated int
}

// Content returns the full output text.
func (r *Result) Content() string {
	return strings.Join(r.Lines, "")
}

// Rewriter applies a Translator to files and directory trees.
type Rewriter struct {
	Translator *Translator
	// Filter decides which lines are left alone. Nil means filter.Default().
	Filter *filter.Filter
	// Extensions selects candidate files in RewriteTree.
	Extensions []string
	// SkipDirs lists directory names pruned during RewriteTree.
	SkipDirs []string
	// DryRun computes results without writing anything.
	DryRun bool

	// OnStart is called once with the candidate files of a tree, before
	// the first of them is processed.
	OnStart func(root string, files []string)
	// OnFile is called after every processed file.
	OnFile func(res *Result)
	// OnExcluded is called for every line skipped by the filter, with the
	// marker that matched.
	OnExcluded func(line, marker string)
}

func (rw *Rewriter) filter() *filter.Filter {
	if rw.Filter == nil {
		rw.Filter = filter.Default()
	}
	return rw.Filter
}

// RewriteFile translates path in place. The file is written only when a
// line changed, and then as a whole.
func (rw *Rewriter) RewriteFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	res := &Result{Path: path}
	res.Lines = rw.RewriteLines(splitLines(string(data)), &res.Translated)
	res.Changed = res.Translated > 0

	if res.Changed && !rw.DryRun {
		if err := writeFileAtomic(path, []byte(res.Content())); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
		}
	}

	if rw.OnFile != nil {
		rw.OnFile(res)
	}
	return res, nil
}

// RewriteLines returns lines with every translatable line replaced. The
// input slice is not modified. translated, if non-nil, receives the
// number of replaced lines.
func (rw *Rewriter) RewriteLines(lines []string, translated *int) []string {
	f := rw.filter()
	out := make([]string, len(lines))
	n := 0
	for i, line := range lines {
		out[i] = line
		if marker, ok := f.Match(line); ok {
			if rw.OnExcluded != nil {
				rw.OnExcluded(line, marker)
			}
			continue
		}
		if tr, ok := rw.Translator.TranslateLine(line); ok {
			out[i] = tr
			n++
		}
	}
	if translated != nil {
		*translated = n
	}
	return out
}

// splitLines cuts s after every '\n'. A final line without terminator is
// kept as is; "" yields no lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory, keeping the original permissions. A symlink is resolved
// first so the link itself survives.
func writeFileAtomic(path string, data []byte) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".chlang-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
