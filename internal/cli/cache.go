package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/internal/config"
	"github.com/keggrest/kegg/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
		Long: `Manage the local file cache of KEGG responses.

Redis and MongoDB caches expire entries on their own and are not managed
by these commands.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := c.openFileCache(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if fc == nil {
				printStatus(cmd.ErrOrStderr(), statusNote, "Cache is empty")
				return nil
			}

			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printStatus(out(cmd), statusDone, "Cleared %d cached entries", count)
			printDetail(out(cmd), "Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.Config.Cache.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(out(cmd), dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := c.openFileCache(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			var st cache.Stats
			if fc != nil {
				if st, err = fc.Stats(); err != nil {
					return fmt.Errorf("read cache: %w", err)
				}
			}

			w := out(cmd)
			if c.flags.json {
				return writeJSON(w, map[string]any{"dir": dir, "entries": st.Entries, "bytes": st.Bytes})
			}
			printKeyValue(w, "Directory", dir)
			printKeyValue(w, "Entries", fmt.Sprint(st.Entries))
			printKeyValue(w, "Size", formatBytes(st.Bytes))
			return nil
		},
	}
}

// openFileCache opens the file cache directory without creating it.
// It returns a nil cache when the directory does not exist yet.
func (c *CLI) openFileCache(stderr io.Writer) (*cache.FileCache, string, error) {
	if b := c.Config.Cache.Backend; b != config.BackendFile && b != config.BackendNone {
		printStatus(stderr, statusWarn, "Configured cache backend is %s; showing the file cache", b)
	}
	dir, err := c.Config.Cache.CacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, dir, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, dir, err
	}
	return fc, dir, nil
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
