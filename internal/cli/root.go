package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
)

// graphFlags holds the command-line flags shared by the root and export
// commands. Config file values fill in every flag the user did not set.
type graphFlags struct {
	opts        pipeline.Options
	depth       int
	rankSep     float64
	configPath  string
	interactive bool
}

func newGraphFlags() *graphFlags {
	return &graphFlags{
		opts: pipeline.Options{
			Orientation: pipeline.DefaultOrientation,
			FileType:    pipeline.DefaultFileType,
			Renderer:    pipeline.DefaultRenderer,
		},
		depth: pipeline.DefaultMaxDepth,
	}
}

// register binds all graph flags to cmd.
func (f *graphFlags) register(cmd *cobra.Command) {
	f.registerBuild(cmd)
	f.registerLayout(cmd)
	f.registerOutput(cmd)
}

// registerBuild binds the flags that shape the graph itself.
func (f *graphFlags) registerBuild(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.depth, "depth", "d", f.depth, "deepest level to expand (-1 for unlimited)")
	fl.BoolVar(&f.opts.ShowHidden, "hidden", false, `include hidden directories (starting with "." or "__")`)
	fl.BoolVarP(&f.opts.ShowData, "data", "m", false, "show sizes and folder/file counts")
	fl.BoolVarP(&f.opts.ShowFiles, "files", "f", false, "list the files in each directory")
	fl.StringArrayVarP(&f.opts.Exclude, "exclude", "e", nil, "exclude paths matching a .dockerignore-style pattern (repeatable)")
	fl.StringVar(&f.opts.BasePath, "base", "", "directory that contains the graphed directory (default: current directory)")
	fl.StringVarP(&f.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/dirgraph/config.toml)")
}

// registerLayout binds the global DOT attribute flags.
func (f *graphFlags) registerLayout(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.opts.Orientation, "orientation", "t", f.opts.Orientation, "graph orientation: TB (default), BT, LR, RL")
	fl.Float64VarP(&f.rankSep, "ranksep", "r", 0, "spacing between levels in inches")

	_ = cmd.RegisterFlagCompletionFunc("orientation", cobra.FixedCompletions(
		[]string{"TB", "BT", "LR", "RL"}, cobra.ShellCompDirectiveNoFileComp))
}

// registerOutput binds the rendering and artifact flags.
func (f *graphFlags) registerOutput(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "choose the directory and options interactively")
	fl.StringVar(&f.opts.FileType, "format", f.opts.FileType, "output format: svg (default), png")
	fl.StringVarP(&f.opts.Output, "output", "o", "", "output file (default <directory>_Graph.<format> in the base directory)")
	fl.StringVar(&f.opts.Renderer, "renderer", f.opts.Renderer, "graphviz backend: graphviz (default), dot, remote")
	fl.StringVar(&f.opts.DotPath, "dot-path", "", "path to the dot binary for --renderer dot")
	fl.StringVar(&f.opts.RemoteURL, "remote-url", "", "Graphviz API endpoint for --renderer remote")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatSVG, pipeline.FormatPNG}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("renderer", cobra.FixedCompletions(
		[]string{pipeline.RendererGraphviz, pipeline.RendererDot, pipeline.RendererRemote}, cobra.ShellCompDirectiveNoFileComp))
}

// options merges the config file into the parsed flags and returns the
// pipeline options for args.
func (f *graphFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	opts := f.opts
	if len(args) > 0 {
		opts.Directory = args[0]
	} else if !f.interactive {
		return opts, errors.New(errors.ErrCodeInvalidDirectory, "directory argument required (or use -i)")
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return opts, err
	}
	cfg.apply(cmd.Flags(), &opts)

	if cmd.Flags().Changed("depth") {
		depth := f.depth
		opts.MaxDepth = &depth
	}
	if cmd.Flags().Changed("ranksep") {
		sep := f.rankSep
		opts.RankSep = &sep
	}
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, nil
}

// runGraph renders one directory graph and prints a summary.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options) error {
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Directory))
	spinner.Start()

	result, err := c.newRunner().Run(ctx, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", opts.Directory))

	printSuccess("Graph of %s created", StyleHighlight.Render(opts.Directory))
	printFile(result.Path)
	printStats(result.Stats)
	return nil
}
