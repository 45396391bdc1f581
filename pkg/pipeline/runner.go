package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/moby/sys/atomicwriter"

	"github.com/matzehuels/dirgraph/pkg/cache"
	"github.com/matzehuels/dirgraph/pkg/dag"
	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/fsys"
	"github.com/matzehuels/dirgraph/pkg/observability"
	"github.com/matzehuels/dirgraph/pkg/render"
	"github.com/matzehuels/dirgraph/pkg/sizes"
	"github.com/matzehuels/dirgraph/pkg/tree"
)

// Runner executes the pipeline. It holds no per-run state, so multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger

	// Renderer overrides the backend selected by Options.Renderer.
	Renderer render.Renderer

	// Cache holds rendered images keyed by DOT source. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run executes the complete scan → build → render → write pipeline.
//
// Options are validated before the directory is touched. The artifact is
// written atomically, so a failed run leaves no partial file behind.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := r.Render(ctx, opts)
	if err != nil {
		return nil, err
	}

	result.Path = opts.OutputPath()
	if err := atomicwriter.WriteFile(result.Path, result.Artifact, 0o644); err != nil {
		return nil, errors.WrapFS(err, "write %s", result.Path)
	}

	r.logger(opts).Info("wrote graph", "run", result.RunID, "path", result.Path)
	return result, nil
}

// Render runs the scan, build and render stages and returns the artifact
// without writing it anywhere.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result, err := r.Graph(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger := r.logger(opts).With("run", result.RunID)

	result.DOT = render.ToDOT(result.Graph, opts.GraphAttrs())

	renderer, err := r.renderer(opts)
	if err != nil {
		return nil, err
	}

	key := cache.ArtifactKey(opts.Renderer, opts.RendererTarget(), opts.FileType, result.DOT)
	if artifact, ok := r.cached(ctx, logger, key); ok {
		result.Artifact = artifact
		result.Cached = true
		logger.Debug("served cached graph", "format", opts.FileType, "size", humanize.Bytes(uint64(len(artifact))))
		return result, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Renderer, opts.FileType)
	renderStart := time.Now()
	artifact, err := renderer.Render(ctx, result.DOT, render.Format(opts.FileType))
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Renderer, opts.FileType, len(artifact), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, artifact, r.CacheTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	logger.Debug("rendered graph",
		"renderer", opts.Renderer,
		"format", opts.FileType,
		"size", humanize.Bytes(uint64(len(artifact))),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Graph runs the scan and build stages only. The returned result carries
// the graph, the size index and stats, but no DOT source or artifact.
func (r *Runner) Graph(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{RunID: uuid.NewString()}
	logger := r.logger(opts).With("run", result.RunID)
	hooks := observability.Pipeline()

	// Stage 1: Scan
	if opts.ShowData {
		hooks.OnScanStart(ctx, opts.Directory)
		scanStart := time.Now()
		index, err := sizes.Compute(ctx, fsys.FastWalker{Base: opts.BasePath}, opts.Directory)
		result.Stats.ScanTime = time.Since(scanStart)
		var (
			dirCount int
			total    int64
		)
		if index != nil {
			dirCount, total = index.Len(), index.Total()
		}
		hooks.OnScanComplete(ctx, opts.Directory, dirCount, total, result.Stats.ScanTime, err)
		if err != nil {
			return nil, err
		}
		result.Sizes = index
		result.Stats.Bytes = total

		logger.Debug("scanned directory",
			"dir", opts.Directory,
			"dirs", dirCount,
			"files", index.Files(),
			"size", humanize.Bytes(uint64(total)),
			"duration", result.Stats.ScanTime)
	}

	// Stage 2: Build
	hooks.OnBuildStart(ctx, opts.Directory)
	buildStart := time.Now()
	g, err := tree.Build(ctx, os.DirFS(opts.BasePath), opts.Directory, opts.TreeOptions(), result.Sizes)
	if err == nil {
		if verr := g.Validate(); verr != nil {
			err = errors.Wrap(errors.ErrCodeInternal, verr, "invalid graph for %s", opts.Directory)
		}
	}
	result.Stats.BuildTime = time.Since(buildStart)
	nodeCount := 0
	if g != nil {
		nodeCount = g.NodeCount()
	}
	hooks.OnBuildComplete(ctx, opts.Directory, nodeCount, result.Stats.BuildTime, err)
	if err != nil {
		return nil, err
	}

	g.Meta()["run_id"] = result.RunID
	result.Graph = g
	result.Stats.Dirs = g.CountKind(dag.NodeKindDirectory)
	result.Stats.Files = countFiles(g)

	logger.Debug("built graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"depth", g.MaxRow(),
		"duration", result.Stats.BuildTime)

	return result, nil
}

// logger returns the logger for a run: the one on opts if set, else the
// runner's own.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// cached looks key up in the runner's cache. Cache failures are logged and
// treated as misses.
func (r *Runner) cached(ctx context.Context, logger *log.Logger, key string) ([]byte, bool) {
	if r.Cache == nil {
		return nil, false
	}
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	return data, ok
}

func (r *Runner) renderer(opts Options) (render.Renderer, error) {
	if r.Renderer != nil {
		return r.Renderer, nil
	}
	return opts.NewRenderer()
}

// countFiles sums the direct file counts recorded on directory nodes.
func countFiles(g *dag.DAG) int {
	total := 0
	for _, n := range g.Nodes() {
		if !n.IsDirectory() {
			continue
		}
		if c, ok := n.Meta["files"].(int); ok {
			total += c
		}
	}
	return total
}
