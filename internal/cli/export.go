package cli

import (
	"context"
	"fmt"
	stdio "io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/moby/sys/atomicwriter"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dirgraph/pkg/errors"
	"github.com/matzehuels/dirgraph/pkg/io"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
	"github.com/matzehuels/dirgraph/pkg/render"
)

// Export formats.
const (
	exportJSON = "json"
	exportDOT  = "dot"
)

// exportCommand creates the export command, which writes the graph of a
// directory without rendering it.
func (c *CLI) exportCommand() *cobra.Command {
	flags := newGraphFlags()
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [directory]",
		Short: "Write the graph of a directory as JSON or DOT",
		Long: heredoc.Doc(`
			Write the graph of a directory as JSON or as Graphviz DOT source.

			The JSON export lists every node with its label, kind, depth and the
			counts and sizes recorded for it, followed by the edges. The DOT output
			is exactly what the renderers receive, so it can be laid out with any
			Graphviz installation.

			Output goes to stdout unless -o is given.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != exportJSON && format != exportDOT {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid export format: %q (must be one of: json, dot)", format)
			}
			opts, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			if output == "" {
				return c.export(cmd.Context(), opts, format, cmd.OutOrStdout())
			}

			f, err := atomicwriter.New(output, 0o644)
			if err != nil {
				return errors.WrapFS(err, "create %s", output)
			}
			if err := c.export(cmd.Context(), opts, format, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.WrapFS(err, "write %s", output)
			}
			printSuccess("Exported %s", StyleHighlight.Render(opts.Directory))
			printFile(output)
			return nil
		},
	}

	flags.registerBuild(cmd)
	flags.registerLayout(cmd)
	cmd.Flags().StringVar(&format, "format", exportJSON, "export format: json (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// export builds the graph for opts and writes it to w in format.
func (c *CLI) export(ctx context.Context, opts pipeline.Options, format string, w stdio.Writer) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	result, err := c.newRunner().Graph(ctx, opts)
	if err != nil {
		return err
	}

	if format == exportDOT {
		_, err := w.Write(render.ToDOT(result.Graph, opts.GraphAttrs()))
		return err
	}
	if err := io.WriteJSON(result.Graph, w); err != nil {
		return fmt.Errorf("export %s: %w", opts.Directory, err)
	}
	return nil
}
