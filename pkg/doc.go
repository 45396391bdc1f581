// Package pkg provides the libraries behind dirgraph, which draws the folder
// hierarchy of a directory as a Graphviz graph.
//
// # Overview
//
// A run turns one directory into one image:
//
//	directory on disk
//	       ↓
//	  [sizes] (optional: cumulative byte totals, one walk)
//	       ↓
//	  [tree]  (containment graph: folders, file listings, labels)
//	       ↓
//	  [render] (DOT source, then SVG or PNG through Graphviz)
//	       ↓
//	  <directory>_Graph.<format>
//
// [pipeline] wires these stages together, validates options before any
// filesystem access and writes the artifact atomically.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil)
//	result, err := runner.Run(ctx, pipeline.Options{
//	    Directory: "src",
//	    ShowData:  true,
//	    ShowFiles: true,
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println("wrote", result.Path)
//
// # Packages
//
//   - [dag]: ordered directed graph with typed nodes and metadata
//   - [fsys]: directory listing and size-only tree walks
//   - [sizes]: byte totals per directory and human-readable units
//   - [tree]: builds the containment graph of a directory
//   - [render]: DOT encoding and the Graphviz backends
//   - [io]: JSON export of graphs
//   - [cache]: artifact cache keyed by DOT source
//   - [pipeline]: orchestration of scan → build → render → write
//   - [errors]: coded errors and input validation
//   - [observability]: hooks for metrics and tracing
//   - [buildinfo]: version information set at link time
//
// [dag]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/dag
// [fsys]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/fsys
// [sizes]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/sizes
// [tree]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/tree
// [render]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dirgraph/pkg/buildinfo
package pkg
