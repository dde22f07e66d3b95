package cli

import (
	"github.com/spf13/cobra"

	"github.com/orcalab/speed/pkg/describe"
	"github.com/orcalab/speed/pkg/errors"
)

// validateCommand creates the validate command.
// It checks a saved description against the structural invariants: totals
// match population sums, every synapse group has tags, targets resolve to
// declared populations, probabilities stay in [0,1], and s_total agrees
// with the synapse counts recoverable from the tags. Groups fed by input
// populations have unrecoverable counts (input sizes are not stored), so
// for those s_total is only checked as a lower bound.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a description against the structural invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := describe.Load(args[0])
			if err != nil {
				return err
			}

			if err := desc.Validate(); err != nil {
				printError("Invalid description: %s", errors.UserMessage(err))
				return err
			}

			printSuccess("%s is valid", args[0])
			printStats(desc.NTotal, desc.STotal, false)
			return nil
		},
	}
}
