package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orcalab/speed/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string // output filename (default: snapshot basename)
	directory string // output directory (default: ~/.speed/output)
	weights   bool   // include weight statistics
	params    bool   // include parameter maps
	noCache   bool   // disable the description cache
	refresh   bool   // bypass cached descriptions
	show      bool   // print the description after converting
}

// convertCommand creates the convert command.
// It loads a TOML network snapshot, extracts the population-level
// description, and writes it as a JSON file.
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{weights: true, params: true}

	cmd := &cobra.Command{
		Use:   "convert <snapshot>",
		Short: "Convert a network snapshot into a description file",
		Long: `Convert a TOML network snapshot into a JSON description file.

The description records population sizes, synapse connectivity, connection
tags (sign, probability, plasticity, weight statistics), and initial
parameters. Without --dir the file is written to ~/.speed/output/.

Examples:
  speed convert network.toml
  speed convert network.toml -o mynet --dir ./out
  speed convert network.toml --weights=false --params=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output filename (default: snapshot basename)")
	cmd.Flags().StringVar(&opts.directory, "dir", "", "output directory (default: ~/.speed/output)")
	cmd.Flags().BoolVar(&opts.weights, "weights", opts.weights, "include weight statistics in synapse tags")
	cmd.Flags().BoolVar(&opts.params, "params", opts.params, "include initial parameter maps")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the description cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached descriptions")
	cmd.Flags().BoolVar(&opts.show, "show", false, "print the description after converting")

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, snapshot string, opts *convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Infof("Converting %s", snapshot)
	prog := newProgress(logger)

	result, err := runner.Execute(ctx, pipeline.Options{
		Snapshot:  snapshot,
		Weights:   opts.weights,
		Params:    opts.params,
		Refresh:   opts.refresh,
		Filename:  opts.output,
		Directory: opts.directory,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Converted %s", result.Network.Name()))

	printSuccess("Converted %s", result.Network.Name())
	printFile(result.Path)
	printStats(result.Stats.NeuronCount, result.Stats.SynapseCount, result.CacheInfo.ExtractHit)

	if opts.show {
		fmt.Println()
		fmt.Print(result.Description.Render())
		return nil
	}

	printNextStep("Inspect the description", fmt.Sprintf("speed show %s", result.Path))
	return nil
}
