// Package sizes computes cumulative directory sizes.
//
// [Compute] walks a subtree once and returns an [Index] mapping every
// directory below (and including) the root to the number of bytes stored in
// it: the sizes of its own files plus the totals of its sub-directories.
// Hidden entries are counted like any other, the index reflects real disk
// usage.
//
// [Convert] renders a byte count with binary units for labels.
package sizes

import (
	"context"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/fsys"
)

// Index maps slash-separated directory paths to cumulative byte sizes.
// An Index is immutable once returned by Compute.
type Index struct {
	root   string
	totals map[string]int64
	files  int
}

// Compute walks root with w and aggregates directory sizes bottom-up.
//
// Every directory visited gets exactly one entry. Walk failures are returned
// as coded filesystem errors; a cancelled context returns ctx.Err().
func Compute(ctx context.Context, w fsys.Walker, root string) (*Index, error) {
	var (
		mu     sync.Mutex
		direct = make(map[string]int64)
		files  int
	)

	err := w.Walk(ctx, root, func(e fsys.Entry) error {
		mu.Lock()
		defer mu.Unlock()
		if e.Dir {
			if _, ok := direct[e.Path]; !ok {
				direct[e.Path] = 0
			}
			return nil
		}
		files++
		direct[path.Dir(e.Path)] += e.Size
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, ok := direct[root]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidDirectory, "%s is not a directory", root)
	}

	return &Index{
		root:   root,
		totals: fold(root, direct),
		files:  files,
	}, nil
}

// fold adds every directory total into its parent, deepest directories
// first, so each total is complete before it is propagated.
func fold(root string, direct map[string]int64) map[string]int64 {
	totals := maps.Clone(direct)
	paths := slices.Collect(maps.Keys(direct))
	slices.SortFunc(paths, func(a, b string) int {
		return strings.Count(b, "/") - strings.Count(a, "/")
	})
	for _, p := range paths {
		if p == root {
			continue
		}
		totals[path.Dir(p)] += totals[p]
	}
	return totals
}

// Root returns the directory the index was computed for.
func (x *Index) Root() string { return x.root }

// Total returns the cumulative size of the root directory.
func (x *Index) Total() int64 { return x.totals[x.root] }

// Bytes returns the cumulative size of the directory at p.
func (x *Index) Bytes(p string) (int64, bool) {
	n, ok := x.totals[p]
	return n, ok
}

// Display returns the formatted cumulative size of the directory at p.
// Unknown paths display as zero.
func (x *Index) Display(p string) string {
	return Convert(x.totals[p])
}

// Len returns the number of directories in the index.
func (x *Index) Len() int { return len(x.totals) }

// Files returns the number of non-directory entries seen by the walk.
func (x *Index) Files() int { return x.files }

// Paths returns the indexed directory paths in lexical order.
func (x *Index) Paths() []string {
	return slices.Sorted(maps.Keys(x.totals))
}
