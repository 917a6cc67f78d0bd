package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/canvascache"
)

// cacheCommand creates the cache management command.
//
// The subcommands operate on the shared redis cache; the in-process memory
// cache of a running service is managed through its mutation endpoint
// instead.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the canvas metadata cache",
	}

	cmd.AddCommand(c.cacheShowCommand())
	cmd.AddCommand(c.cacheInvalidateCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand for the local
// file cache.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the local canvas metadata cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return err
			}
			count := 0
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
					count++
				}
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the local cache directory path",
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

// cacheShowCommand creates the "cache show" subcommand.
func (c *CLI) cacheShowCommand() *cobra.Command {
	var (
		redisAddr string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "show [document-id]",
		Short: "Show the cached canvas metadata for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openRedis(cmd.Context(), redisAddr, ttl)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			if entry == nil {
				printInfo("No cached metadata for %s", args[0])
				return nil
			}

			printKeyValue("canvas", fmt.Sprintf("%.0f × %.0f pt", entry.Dimensions.Width, entry.Dimensions.Height))
			printKeyValue("cached at", entry.Timestamp.Format(time.RFC3339))
			if len(entry.Layouts) > 0 {
				printKeyValue("layouts", strings.Join(entry.Layouts, ", "))
			}
			if len(entry.Masters) > 0 {
				printKeyValue("masters", strings.Join(entry.Masters, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "redis address (host:port)")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", canvascache.DefaultTTL, "canvas metadata time-to-live")

	return cmd
}

// cacheInvalidateCommand creates the "cache invalidate" subcommand.
func (c *CLI) cacheInvalidateCommand() *cobra.Command {
	var (
		redisAddr string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "invalidate [document-id]",
		Short: "Drop the cached canvas metadata for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.openRedis(cmd.Context(), redisAddr, ttl)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Invalidate(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("invalidate: %w", err)
			}
			printSuccess("Invalidated metadata for %s", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "localhost:6379", "redis address (host:port)")
	cmd.Flags().DurationVar(&ttl, "cache-ttl", canvascache.DefaultTTL, "canvas metadata time-to-live")

	return cmd
}

func (c *CLI) openRedis(ctx context.Context, addr string, ttl time.Duration) (*canvascache.RedisStore, error) {
	store, err := canvascache.NewRedisStore(ctx, canvascache.RedisConfig{Addr: addr, TTL: ttl})
	if err != nil {
		return nil, fmt.Errorf("connect to cache: %w", err)
	}
	return store, nil
}
