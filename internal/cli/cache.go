package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fluvia/pkg/cache"
)

// cacheCommand creates the cache management command. It manages the local
// file cache only; shared Redis and Mongo caches expire on their own.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local terrain cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached terrain and base fields",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLocalCache(func(fc *cache.FileCache) error {
					count, err := fc.Clear()
					if err != nil {
						return err
					}
					printSuccess("Cleared %d cached entries", count)
					printDetail("Directory: %s", fc.Dir())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "info",
			Short: "Show the number and size of cached entries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withLocalCache(func(fc *cache.FileCache) error {
					entries, size, err := fc.Usage()
					if err != nil {
						return err
					}
					printKeyValue("Directory", fc.Dir())
					printKeyValue("Entries", StyleNumber.Render(fmt.Sprint(entries)))
					printKeyValue("Size", StyleNumber.Render(formatBytes(size)))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
	)

	return cmd
}

// withLocalCache opens the local file cache and calls fn. A missing cache
// directory is reported as empty without creating it.
func withLocalCache(fn func(*cache.FileCache) error) error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	return fn(fc)
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
