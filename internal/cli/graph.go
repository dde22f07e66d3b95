package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/pipeline"
	"github.com/orcalab/speed/pkg/viz"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string // output file path (default: input basename + format)
	format   string // output format: dot or svg
	detailed bool   // include connection tags in edge labels
	noCache  bool   // disable the description cache
}

// graphCommand creates the graph command for rendering connectivity
// diagrams. The input can be a TOML snapshot (converted on the fly) or a
// saved JSON description.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "graph <snapshot-or-description>",
		Short: "Render a connectivity diagram",
		Long: `Render the population connectivity of a network as a diagram.

The input is either a TOML snapshot or a saved JSON description.

Examples:
  speed graph network.toml
  speed graph network.json -f dot
  speed graph network.toml --detailed -o connectivity.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatDOT && opts.format != formatSVG {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}
			return c.runGraph(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input basename + format)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include connection tags in edge labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the description cache")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, input string, opts *graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	desc, err := c.loadDescription(cmd, input, opts.noCache)
	if err != nil {
		return err
	}

	dot := viz.ToDOT(desc, viz.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		logger.Info("Rendering connectivity SVG")
		spin := newSpinnerWithContext(ctx, "rendering diagram")
		spin.Start()
		data, err = viz.RenderSVG(dot)
		spin.Stop()
		if err != nil {
			return err
		}
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	printSuccess("Rendered connectivity diagram")
	printFile(path)
	return nil
}

// loadDescription resolves the graph input: snapshots are converted through
// the pipeline (without saving), descriptions are loaded directly.
func (c *CLI) loadDescription(cmd *cobra.Command, input string, noCache bool) (*describe.Description, error) {
	if strings.HasSuffix(input, describe.DefaultExtension) {
		return describe.Load(input)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Snapshot: input,
		Weights:  true,
		Params:   true,
		SkipSave: true,
		Logger:   loggerFromContext(cmd.Context()),
	})
	if err != nil {
		return nil, err
	}
	return result.Description, nil
}
