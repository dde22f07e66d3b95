package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/orcalab/speed/pkg/describe"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	raw         bool // print the raw JSON instead of the listing
	interactive bool // browse saved descriptions interactively
}

// showCommand creates the show command for inspecting saved descriptions.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Display a saved description",
		Long: `Display a saved description file.

Without a file argument (or with --interactive), show opens a browser over
the descriptions in the default output directory.

Examples:
  speed show network.json
  speed show network.json --raw
  speed show`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || opts.interactive {
				return c.runShowInteractive()
			}
			return runShow(args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the raw JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse saved descriptions")

	return cmd
}

func runShow(path string, opts *showOpts) error {
	desc, err := describe.Load(path)
	if err != nil {
		return err
	}

	if opts.raw {
		data, err := desc.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(desc.Render())
	return nil
}

// runShowInteractive opens the description browser over the default output
// directory and prints the selected description.
func (c *CLI) runShowInteractive() error {
	dir, err := describe.DefaultDirectory()
	if err != nil {
		return err
	}

	entries, err := listDescriptions(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("No descriptions in %s", dir)
		printNextStep("Convert a snapshot first", "speed convert <snapshot>")
		return nil
	}

	model := newBrowserModel(entries)
	final, err := tea.NewProgram(model, tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	m, ok := final.(browserModel)
	if !ok || m.Selected == nil {
		return nil
	}

	desc, err := describe.Load(m.Selected.Path)
	if err != nil {
		return err
	}
	fmt.Print(desc.Render())
	return nil
}
