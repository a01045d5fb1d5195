package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotspec/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
		Long: `Manage the rendered artifact cache.

Rendered files are cached by document content, format and figure options, so
re-rendering an unchanged document is instant. Entries expire after a week.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheClear(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCacheInfo(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	})

	return cmd
}

// openCacheDir opens the file cache if its directory exists. It returns
// nil without an error when nothing was ever cached.
func openCacheDir() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func runCacheClear(ctx context.Context) error {
	fc, err := openCacheDir()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}

	count, err := fc.Clear(ctx)
	if err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("cleared cache", "dir", fc.Dir(), "entries", count)
	printSuccess("Cleared %s", plural(count, "cached artifact", "cached artifacts"))
	printDetail("Directory: %s", fc.Dir())
	return nil
}

func runCacheInfo(ctx context.Context) error {
	fc, err := openCacheDir()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}

	u, err := fc.Usage(ctx)
	if err != nil {
		return err
	}
	printKeyValue("directory", fc.Dir())
	printKeyValue("artifacts", fmt.Sprintf("%d", u.Entries))
	printKeyValue("size", formatBytes(u.Bytes))
	return nil
}
