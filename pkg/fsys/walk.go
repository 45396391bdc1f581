package fsys

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/charlievieth/fastwalk"

	"github.com/matzehuels/dirgraph/pkg/errors"
)

// WalkFunc is called once for every entry of a walked subtree, the root
// included. Returning an error stops the walk.
type WalkFunc func(e Entry) error

// Walker visits every entry below a root exactly once. Walk returns
// ctx.Err() when the context is cancelled mid-walk and a coded filesystem
// error when an entry cannot be read. Visit order is unspecified.
type Walker interface {
	Walk(ctx context.Context, root string, fn WalkFunc) error
}

// FSWalker walks an [fs.FS] with [fs.WalkDir].
type FSWalker struct {
	FS fs.FS
}

// Walk implements [Walker].
func (w FSWalker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	return fs.WalkDir(w.FS, root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFS(err, "walk %s", p)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		e, err := entryOf(path.Dir(p), de)
		if err != nil {
			return err
		}
		e.Path = p
		return fn(e)
	})
}

// FastWalker walks a directory on disk with fastwalk. Base is the OS path
// that walked roots are relative to.
//
// The walk runs on a single worker, so fn is never called concurrently.
type FastWalker struct {
	Base string
}

// Walk implements [Walker].
func (w FastWalker) Walk(ctx context.Context, root string, fn WalkFunc) error {
	start := filepath.Join(w.Base, filepath.FromSlash(root))
	conf := fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	err := fastwalk.Walk(&conf, start, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFS(err, "walk %s", p)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(w.Base, p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "resolve %s", p)
		}
		rel = filepath.ToSlash(rel)
		e, err := entryOf(path.Dir(rel), de)
		if err != nil {
			return err
		}
		e.Name = path.Base(rel)
		e.Path = rel
		return fn(e)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return errors.WrapFS(err, "walk %s", root)
	}
	return nil
}
