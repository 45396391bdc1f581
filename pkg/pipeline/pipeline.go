// Package pipeline provides the directory visualization pipeline for dirgraph.
//
// This package implements the complete scan → build → render pipeline that
// is shared by the CLI, the export command and the preview server, so every
// entry point validates, labels and renders a directory the same way.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Scan: Aggregate cumulative directory sizes (only when data is shown)
//  2. Build: Walk the directory and construct the containment graph
//  3. Render: Encode the graph as DOT and lay it out with a Graphviz backend
//  4. Write: Atomically write the artifact next to the directory
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Directory: "photos",
//	    ShowData:  true,
//	    ShowFiles: true,
//	}
//	result, err := runner.Run(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.Path)
//
// Build the graph without rendering:
//
//	result, err := runner.Graph(ctx, opts)
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moby/patternmatcher"

	"github.com/matzehuels/dirgraph/pkg/dag"
	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/render"
	"github.com/matzehuels/dirgraph/pkg/sizes"
	"github.com/matzehuels/dirgraph/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOrientation is the default rank direction.
	DefaultOrientation = render.TopToBottom

	// DefaultFileType is the default output format.
	DefaultFileType = FormatSVG

	// DefaultMaxDepth expands every level. It applies when MaxDepth is nil.
	DefaultMaxDepth = tree.Unlimited

	// DefaultRenderer is the default Graphviz backend.
	DefaultRenderer = RendererGraphviz
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Renderer names accepted in Options.Renderer.
const (
	RendererGraphviz = "graphviz" // In-process Graphviz
	RendererDot      = "dot"      // External dot binary
	RendererRemote   = "remote"   // quickchart.io Graphviz API
)

// ValidOrientations is the set of supported rank directions.
var ValidOrientations = map[string]bool{
	render.TopToBottom: true,
	render.BottomToTop: true,
	render.LeftToRight: true,
	render.RightToLeft: true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
}

// ValidRenderers is the set of supported renderer backends.
var ValidRenderers = map[string]bool{
	RendererGraphviz: true,
	RendererDot:      true,
	RendererRemote:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
type Options struct {
	// Input
	BasePath  string `json:"base_path,omitempty"` // Directory that contains Directory (default: cwd)
	Directory string `json:"directory"`           // Name of a direct child of BasePath

	// Build options
	ShowData   bool     `json:"show_data,omitempty"`
	ShowFiles  bool     `json:"show_files,omitempty"`
	ShowHidden bool     `json:"show_hidden,omitempty"`
	MaxDepth   *int     `json:"max_depth,omitempty"` // nil or -1 for no limit
	Exclude    []string `json:"exclude,omitempty"`

	// Render options
	Orientation string   `json:"orientation,omitempty"`
	FileType    string   `json:"file_type,omitempty"`
	RankSep     *float64 `json:"ranksep,omitempty"`
	Renderer    string   `json:"renderer,omitempty"`
	DotPath     string   `json:"dot_path,omitempty"`
	RemoteURL   string   `json:"remote_url,omitempty"`

	// Output path; defaults to <BasePath>/<Directory>_Graph.<FileType>
	Output string `json:"output,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	matcher   *patternmatcher.PatternMatcher
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the containment graph of the directory.
	Graph *dag.DAG

	// Sizes holds cumulative directory sizes; nil unless ShowData was set.
	Sizes *sizes.Index

	// RunID identifies the run in logs and exports.
	RunID string

	// DOT is the Graphviz source handed to the renderer.
	DOT []byte

	// Artifact is the rendered image.
	Artifact []byte

	// Cached reports whether Artifact came from the runner's cache.
	Cached bool

	// Path is where Artifact was written.
	Path string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Dirs       int   // Directory nodes in the graph
	Files      int   // Files directly inside those directories
	Bytes      int64 // Cumulative size of the root; 0 unless ShowData was set
	ScanTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateOrientation checks that an orientation is valid. Matching is
// case-insensitive.
func ValidateOrientation(orientation string) error {
	if !ValidOrientations[strings.ToUpper(orientation)] {
		return errors.New(errors.ErrCodeInvalidOrientation,
			"invalid orientation: %q (must be one of: TB, BT, LR, RL)", orientation)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png)", format)
	}
	return nil
}

// ValidateRenderer checks that a renderer name is valid.
func ValidateRenderer(name string) error {
	if !ValidRenderers[name] {
		return errors.New(errors.ErrCodeInvalidRenderer,
			"invalid renderer: %q (must be one of: graphviz, dot, remote)", name)
	}
	return nil
}

// ValidateDepth checks that a depth limit is valid.
func ValidateDepth(depth int) error {
	if depth < tree.Unlimited {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid depth: %d (must be -1 for unlimited or >= 0)", depth)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills in unset fields.
func (o *Options) SetDefaults() error {
	if o.BasePath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "determine working directory")
		}
		o.BasePath = wd
	}
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if o.FileType == "" {
		o.FileType = DefaultFileType
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	return nil
}

// Validate checks every option before any traversal starts. Orientation and
// file type are normalized in place.
func (o *Options) Validate() error {
	if err := errors.ValidateDirName(o.Directory); err != nil {
		return err
	}
	dir := filepath.Join(o.BasePath, o.Directory)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeInvalidDirectory,
				"%q is not a directory in %s", o.Directory, o.BasePath)
		}
		return errors.WrapFS(err, "stat %s", dir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidDirectory,
			"%q is not a directory in %s", o.Directory, o.BasePath)
	}

	if err := ValidateOrientation(o.Orientation); err != nil {
		return err
	}
	o.Orientation = strings.ToUpper(o.Orientation)

	o.FileType = strings.ToLower(o.FileType)
	if err := ValidateFormat(o.FileType); err != nil {
		return err
	}
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	if err := ValidateDepth(o.Depth()); err != nil {
		return err
	}
	if o.RankSep != nil && *o.RankSep < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid ranksep: %g (must be >= 0)", *o.RankSep)
	}
	if o.Output != "" {
		if err := errors.ValidateOutputPath(o.Output); err != nil {
			return err
		}
	}
	if o.Renderer == RendererRemote && o.RemoteURL != "" {
		if err := errors.ValidateURL(o.RemoteURL); err != nil {
			return err
		}
	}

	o.matcher = nil
	if len(o.Exclude) > 0 {
		pm, err := patternmatcher.New(o.Exclude)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid exclude pattern")
		}
		o.matcher = pm
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates the options.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.SetDefaults(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Depth returns the effective depth limit: *MaxDepth, or DefaultMaxDepth
// when it is unset.
func (o *Options) Depth() int {
	if o.MaxDepth == nil {
		return DefaultMaxDepth
	}
	return *o.MaxDepth
}

// OutputPath returns the path the artifact is written to.
func (o *Options) OutputPath() string {
	if o.Output != "" {
		return o.Output
	}
	return filepath.Join(o.BasePath, fmt.Sprintf("%s_Graph.%s", o.Directory, o.FileType))
}

// TreeOptions returns the options for tree.Build. It is only meaningful
// after Validate.
func (o *Options) TreeOptions() tree.Options {
	return tree.Options{
		ShowData:   o.ShowData,
		ShowFiles:  o.ShowFiles,
		ShowHidden: o.ShowHidden,
		MaxDepth:   o.Depth(),
		Exclude:    o.matcher,
	}
}

// GraphAttrs returns the global DOT attributes for the options.
func (o *Options) GraphAttrs() render.GraphAttrs {
	return render.GraphAttrs{
		Orientation: o.Orientation,
		RankSep:     o.RankSep,
	}
}

// RendererTarget names the backend instance behind o.Renderer: the dot
// binary path or the service URL. It is empty for the in-process renderer.
func (o *Options) RendererTarget() string {
	switch o.Renderer {
	case RendererDot:
		return o.DotPath
	case RendererRemote:
		if o.RemoteURL == "" {
			return render.DefaultRemoteURL
		}
		return o.RemoteURL
	}
	return ""
}

// NewRenderer returns the backend selected by o.Renderer.
func (o *Options) NewRenderer() (render.Renderer, error) {
	switch o.Renderer {
	case RendererGraphviz, "":
		return render.Graphviz{}, nil
	case RendererDot:
		return render.Exec{Path: o.DotPath}, nil
	case RendererRemote:
		return render.Remote{URL: o.RemoteURL}, nil
	}
	return nil, ValidateRenderer(o.Renderer)
}
