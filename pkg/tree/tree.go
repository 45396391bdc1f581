// Package tree builds the containment graph of a directory.
//
// [Build] walks a directory top-down and produces a [dag.DAG] with one
// node per retained directory, an optional file-listing node per directory,
// and an edge from every directory to each of its children. Labels carry
// the directory name and, when requested, sizes and entry counts taken from
// a [sizes.Index].
//
// # Filtering
//
// Hidden directories (names starting with "." or "__") are pruned unless
// [Options.ShowHidden] is set; hidden files are still listed. Exclusion
// patterns use .dockerignore syntax and apply to both files and
// directories, relative to the visualized directory.
//
// # Depth
//
// The root is at depth 0. With [Options.MaxDepth] k >= 0, a directory at
// depth d gets children only while d < k, so no directory node deeper than
// k exists. Directories at depth k > 0 are never listed and keep the plain
// name label given by their parent. A negative MaxDepth means no limit.
package tree

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/matzehuels/dirgraph/pkg/dag"
	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/fsys"
	"github.com/matzehuels/dirgraph/pkg/sizes"
)

// Unlimited disables the depth limit.
const Unlimited = -1

// Options controls which entries become nodes and what their labels show.
type Options struct {
	ShowData   bool                           // Sizes and counts in directory labels
	ShowFiles  bool                           // One file-listing node per directory
	ShowHidden bool                           // Keep directories starting with "." or "__"
	MaxDepth   int                            // Deepest expanded level; Unlimited for none
	Exclude    *patternmatcher.PatternMatcher // Optional .dockerignore-style exclusions
}

// Build returns the containment graph of root inside fsys.
//
// index must be non-nil when opts.ShowData is set. Listing failures are
// returned as coded filesystem errors; nothing is returned alongside them.
func Build(ctx context.Context, fsys fs.FS, root string, opts Options, index *sizes.Index) (*dag.DAG, error) {
	if opts.ShowData && index == nil {
		return nil, errors.New(errors.ErrCodeInternal, "size index required to show data")
	}
	b := &builder{
		ctx:   ctx,
		fsys:  fsys,
		root:  root,
		opts:  opts,
		index: index,
		g:     dag.New(dag.Metadata{"root": root}),
	}
	if err := b.g.AddNode(dag.Node{ID: root, Row: 0, Kind: dag.NodeKindDirectory}); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add root %s", root)
	}
	if err := b.visit(root, 0); err != nil {
		return nil, err
	}
	return b.g, nil
}

type builder struct {
	ctx   context.Context
	fsys  fs.FS
	root  string
	opts  Options
	index *sizes.Index

	g          *dag.DAG
	fileGroups int
}

// visit labels the node of dir and, within the depth limit, attaches its
// children and descends into them.
func (b *builder) visit(dir string, depth int) error {
	if err := b.ctx.Err(); err != nil {
		return err
	}
	if depth > 0 && b.atLimit(depth) {
		return nil
	}

	dirs, files, err := b.children(dir)
	if err != nil {
		return err
	}
	fileBytes := fsys.SumSizes(files)

	node, ok := b.g.Node(dir)
	if !ok {
		return errors.New(errors.ErrCodeInternal, "missing node for %s", dir)
	}
	node.Label = b.directoryLabel(dir, len(dirs), len(files), fileBytes)
	node.Meta["path"] = dir
	node.Meta["folders"] = len(dirs)
	node.Meta["files"] = len(files)
	if b.index != nil {
		if n, ok := b.index.Bytes(dir); ok {
			node.Meta["bytes"] = n
		}
	}

	if b.atLimit(depth) {
		return nil
	}

	for _, d := range dirs {
		child := dag.Node{
			ID:    d.Path,
			Label: d.Name,
			Row:   depth + 1,
			Kind:  dag.NodeKindDirectory,
			Meta:  dag.Metadata{"path": d.Path},
		}
		if err := b.link(dir, child); err != nil {
			return err
		}
	}

	if b.opts.ShowFiles && len(files) > 0 {
		b.fileGroups++
		label := b.fileGroupLabel(files, fileBytes)
		group := dag.Node{
			ID:    strconv.Itoa(b.fileGroups) + label,
			Label: label,
			Row:   depth + 1,
			Kind:  dag.NodeKindFileGroup,
			Meta:  dag.Metadata{"path": dir, "files": len(files), "bytes": fileBytes},
		}
		if err := b.link(dir, group); err != nil {
			return err
		}
	}

	for _, d := range dirs {
		if err := b.visit(d.Path, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) atLimit(depth int) bool {
	return b.opts.MaxDepth >= 0 && depth >= b.opts.MaxDepth
}

func (b *builder) link(parent string, child dag.Node) error {
	if err := b.g.AddNode(child); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "add node %s", child.ID)
	}
	if err := b.g.AddEdge(dag.Edge{From: parent, To: child.ID}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "add edge %s -> %s", parent, child.ID)
	}
	return nil
}

// children lists dir and drops pruned entries.
func (b *builder) children(dir string) (dirs, files []fsys.Entry, err error) {
	allDirs, allFiles, err := fsys.ListChildren(b.fsys, dir)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range allDirs {
		if !b.opts.ShowHidden && fsys.IsHidden(d.Name) {
			continue
		}
		excluded, err := b.excluded(d.Path)
		if err != nil {
			return nil, nil, err
		}
		if !excluded {
			dirs = append(dirs, d)
		}
	}
	for _, f := range allFiles {
		excluded, err := b.excluded(f.Path)
		if err != nil {
			return nil, nil, err
		}
		if !excluded {
			files = append(files, f)
		}
	}
	return dirs, files, nil
}

func (b *builder) excluded(p string) (bool, error) {
	if b.opts.Exclude == nil {
		return false, nil
	}
	rel := strings.TrimPrefix(p, b.root+"/")
	ok, err := b.opts.Exclude.MatchesOrParentMatches(filepath.FromSlash(rel))
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidInput, err, "match exclusion patterns against %s", rel)
	}
	return ok, nil
}

// directoryLabel renders the multi-line label of a directory node.
func (b *builder) directoryLabel(dir string, nDirs, nFiles int, fileBytes int64) string {
	var sb strings.Builder
	sb.WriteString(path.Base(dir))
	if b.opts.ShowData {
		sb.WriteString(" (" + b.index.Display(dir) + ")")
	}
	sb.WriteByte('\n')
	if b.opts.ShowData && nDirs > 0 {
		sb.WriteString(count(nDirs, "Folder") + "\n")
	}
	if b.opts.ShowData && nFiles > 0 {
		sb.WriteString(count(nFiles, "File"))
		if !b.opts.ShowFiles && nDirs > 0 {
			sb.WriteString(" (" + sizes.Convert(fileBytes) + ")")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// fileGroupLabel renders the label of a file-listing node: an optional
// summary line followed by one line per file.
func (b *builder) fileGroupLabel(files []fsys.Entry, fileBytes int64) string {
	var sb strings.Builder
	if b.opts.ShowData {
		sb.WriteString(count(len(files), "File") + " (" + sizes.Convert(fileBytes) + ")\n")
	}
	for _, f := range files {
		sb.WriteString(f.Name + "\n")
	}
	return sb.String()
}

// count returns "1 File", "2 Files" and so on.
func count(n int, noun string) string {
	return strconv.Itoa(n) + " " + noun + plural(n)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
