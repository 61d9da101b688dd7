package rewrite

import (
	"fmt"
	"os"

	"github.com/minios-linux/chlang/sources"
)

// Summary aggregates a RewriteTree run.
type Summary struct {
	// Scanned is the number of candidate files visited.
	Scanned int
	// Rewritten is the number of files with at least one change.
	Rewritten int
	// Lines is the total number of translated lines.
	Lines int
}

// RewriteTree rewrites every candidate file under root. Files are handled
// independently and in sorted order; the first error stops the run.
func (rw *Rewriter) RewriteTree(root string) (*Summary, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrFileAccess, root)
	}

	files, err := sources.Find(root, rw.Extensions, rw.SkipDirs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	if rw.OnStart != nil {
		rw.OnStart(root, files)
	}

	sum := &Summary{}
	for _, path := range files {
		res, err := rw.RewriteFile(path)
		if err != nil {
			return sum, err
		}
		sum.Scanned++
		if res.Changed {
			sum.Rewritten++
			sum.Lines += res.Translated
		}
	}
	return sum, nil
}
