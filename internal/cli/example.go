package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orcalab/speed/pkg/network"
)

// exampleCommand creates the example command, which writes one of the
// bundled example snapshots so users can try the conversion without a
// simulator at hand.
func (c *CLI) exampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write a bundled example snapshot",
	}

	cmd.AddCommand(c.exampleSTDPCommand())
	cmd.AddCommand(c.exampleWTACommand())

	return cmd
}

func (c *CLI) exampleSTDPCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stdp",
		Short: "Write the plastic feed-forward example snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeExample(network.STDPExample(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "stdp.toml", "output file")
	return cmd
}

func (c *CLI) exampleWTACommand() *cobra.Command {
	var output string
	opts := network.DefaultWTAOptions()

	cmd := &cobra.Command{
		Use:   "wta",
		Short: "Write the winner-take-all example snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeExample(network.WTAExample(opts), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "wta.toml", "output file")
	cmd.Flags().IntVar(&opts.NumNeurons, "neurons", opts.NumNeurons, "excitatory population size")
	cmd.Flags().Float64Var(&opts.EIConnProb, "conn-prob", opts.EIConnProb, "recurrent connection probability")
	cmd.Flags().Int64Var(&opts.Seed, "seed", opts.Seed, "seed for generated connectivity")

	return cmd
}

func writeExample(snap *network.Snapshot, output string) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	printSuccess("Wrote %s snapshot", snap.Name)
	printFile(output)
	printNextStep("Convert it", fmt.Sprintf("speed convert %s", output))
	return nil
}
