package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dirgraph/pkg/buildinfo"
	"github.com/matzehuels/dirgraph/pkg/pipeline"
	"github.com/matzehuels/dirgraph/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dirgraph"

	// configFileName is the name of the config file inside the config directory.
	configFileName = "config.toml"

	// defaultAddr is the default listen address of the preview server.
	defaultAddr = ":8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// renderer replaces the backend selected by flags; used in tests.
	renderer render.Renderer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The root command itself draws a directory graph.
func (c *CLI) RootCommand() *cobra.Command {
	flags := newGraphFlags()

	root := &cobra.Command{
		Use:   "dirgraph [directory]",
		Short: "dirgraph draws the folder hierarchy of a directory as a graph",
		Long: heredoc.Doc(`
			dirgraph draws the folder hierarchy of a directory as a Graphviz graph.

			The directory must be a direct child of the base directory (the current
			directory unless --base is given). The image is written next to it as
			<directory>_Graph.<format>.

			Every directory becomes a folder-shaped node. With --data each node also
			shows the cumulative size of the directory and how many folders and files
			it directly contains; with --files the names of the files in each
			directory are listed in a separate box.

			Run with -i for an interactive wizard that asks for every option.
		`),
		Example: heredoc.Doc(`
			# Draw ./src top to bottom as SVG
			dirgraph src

			# Sizes, file listings and a left-to-right layout, two levels deep
			dirgraph src --data --files -t LR -d 2

			# PNG through a local Graphviz installation
			dirgraph src --format png --renderer dot --dot-path /usr/local/bin/dot
		`),
		Version:      buildinfo.Version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			if flags.interactive {
				return c.runWizard(cmd.Context(), opts)
			}
			return c.runGraph(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags.register(root)

	// Register all subcommands
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	r := pipeline.NewRunner(c.Logger)
	r.Renderer = c.renderer
	return r
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/dirgraph/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
