package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the description cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. The file cache
// groups entries by artifact kind (description/, snapshot/), so the
// removal count is reported per kind.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached descriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			kinds, err := os.ReadDir(dir)
			if os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return err
			}

			total := 0
			byKind := make(map[string]int)
			for _, kind := range kinds {
				path := filepath.Join(dir, kind.Name())
				if !kind.IsDir() {
					// Stray file at the cache root
					if os.Remove(path) == nil {
						total++
					}
					continue
				}
				entries, err := os.ReadDir(path)
				if err != nil {
					continue
				}
				for _, entry := range entries {
					if os.Remove(filepath.Join(path, entry.Name())) == nil {
						byKind[kind.Name()]++
						total++
					}
				}
				_ = os.Remove(path)
			}

			if total == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", total)
			for _, kind := range sortedCacheKinds(byKind) {
				printDetail("%s: %d", kind, byKind[kind])
			}
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// sortedCacheKinds returns the kind names in sorted order for stable
// output.
func sortedCacheKinds(byKind map[string]int) []string {
	kinds := make([]string, 0, len(byKind))
	for kind := range byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
