// Package fsys is the filesystem collaborator of dirgraph.
//
// It lists the children of a directory split into sub-directories and files
// ([ListChildren]) and walks whole subtrees ([Walker]). All paths handed out
// by this package are slash-separated and relative to a base directory, so
// the same code runs against the real disk ([os.DirFS], [FastWalker]) and
// against in-memory trees in tests ([testing/fstest.MapFS], [FSWalker]).
//
// Symbolic links are never followed: a link is reported as a non-directory
// entry whose size is the length of the link itself.
package fsys

import (
	"io/fs"
	"path"
	"strings"

	"github.com/matzehuels/dirgraph/pkg/errors"
)

// Entry is one filesystem entry seen during a listing or walk.
type Entry struct {
	Name string // Base name
	Path string // Slash path relative to the base directory
	Dir  bool   // True for directories (never for symlinks)
	Size int64  // Byte length for non-directories, 0 for directories
}

// IsHidden reports whether a directory name is treated as hidden:
// names starting with "." or "__".
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__")
}

// ListChildren returns the sub-directories and the files directly inside
// dir, each in lexical order. Everything that is not a directory, symlinks
// included, is reported as a file.
func ListChildren(fsys fs.FS, dir string) (dirs, files []Entry, err error) {
	des, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, nil, errors.WrapFS(err, "list %s", dir)
	}
	for _, de := range des {
		e, err := entryOf(dir, de)
		if err != nil {
			return nil, nil, err
		}
		if e.Dir {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	return dirs, files, nil
}

// ListDirNames returns the names of the sub-directories of dir.
func ListDirNames(fsys fs.FS, dir string) ([]string, error) {
	dirs, _, err := ListChildren(fsys, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name
	}
	return names, nil
}

// SumSizes returns the total byte size of entries.
func SumSizes(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}

func entryOf(dir string, de fs.DirEntry) (Entry, error) {
	e := Entry{
		Name: de.Name(),
		Path: path.Join(dir, de.Name()),
		Dir:  de.IsDir(),
	}
	if e.Dir {
		return e, nil
	}
	info, err := de.Info()
	if err != nil {
		return Entry{}, errors.WrapFS(err, "stat %s", e.Path)
	}
	e.Size = info.Size()
	return e, nil
}
