// Package cli implements the deckplan command-line interface.
//
// This package provides commands for planning slide layouts from TOML deck
// manifests, arranging element batches, fitting text into boxes, serving
// the layout engine over HTTP, and managing the canvas metadata cache. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - plan: Place a deck manifest's text items on the canvas
//   - arrange: Reposition an element batch with a layout strategy
//   - fit: Solve the largest font size that fits a box
//   - serve: Run the layout engine as an HTTP service
//   - preview: Inspect a planned layout in an interactive TUI
//   - cache: Manage the canvas metadata cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/buildinfo"
	"github.com/deckplan/deckplan/pkg/canvascache"
	"github.com/deckplan/deckplan/pkg/engine"
	"github.com/deckplan/deckplan/pkg/geometry"
	"github.com/deckplan/deckplan/pkg/provider"
)

// appName is the application name used for display.
const appName = "deckplan"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Deckplan places and sizes slide elements",
		Long:         `Deckplan is a layout engine for slide presentations: it styles text by content, estimates its footprint, stacks and arranges elements on the canvas, and keeps every box inside slide bounds.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.planCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.fitCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// backendFlags is the provider/cache wiring shared by the commands that
// resolve canvas metadata.
type backendFlags struct {
	apiBase  string
	apiToken string
	mongoURI string
	redis    string
	ttl      time.Duration
}

// register adds the backend flags to cmd.
func (b *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.apiBase, "api-base", "", "presentation API base URL for canvas metadata")
	cmd.Flags().StringVar(&b.apiToken, "api-token", "", "bearer token for the presentation API")
	cmd.Flags().StringVar(&b.mongoURI, "mongo-uri", "", "MongoDB connection string for canvas metadata")
	cmd.Flags().StringVar(&b.redis, "redis", "", "redis address (host:port) for a shared metadata cache")
	cmd.Flags().DurationVar(&b.ttl, "cache-ttl", canvascache.DefaultTTL, "canvas metadata time-to-live")
}

// newEngine builds an engine from the backend flags. With no flags set the
// engine runs fully offline: in-memory cache, default canvas.
func (c *CLI) newEngine(ctx context.Context, b backendFlags) (*engine.Engine, error) {
	store, err := c.newStore(ctx, b)
	if err != nil {
		return nil, err
	}
	prov, err := newProvider(ctx, b)
	if err != nil {
		return nil, err
	}
	return engine.New(store, prov, c.Logger), nil
}

func (c *CLI) newStore(ctx context.Context, b backendFlags) (canvascache.Store, error) {
	if b.redis != "" {
		return canvascache.NewRedisStore(ctx, canvascache.RedisConfig{
			Addr: b.redis,
			TTL:  b.ttl,
		})
	}

	// Keep canvas metadata warm across CLI runs; fall back to a purely
	// in-process cache when the directory is unavailable.
	dir, err := cacheDir()
	if err != nil {
		return canvascache.NewMemoryStore(b.ttl), nil
	}
	store, err := canvascache.NewFileStore(dir, b.ttl)
	if err != nil {
		c.Logger.Warn("file cache unavailable", "dir", dir, "err", err)
		return canvascache.NewMemoryStore(b.ttl), nil
	}
	return store, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/deckplan/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func newProvider(ctx context.Context, b backendFlags) (provider.Provider, error) {
	switch {
	case b.apiBase != "":
		p := provider.NewHTTP(b.apiBase)
		p.Token = b.apiToken
		return p, nil
	case b.mongoURI != "":
		return provider.NewMongo(ctx, provider.MongoConfig{URI: b.mongoURI})
	default:
		return provider.Static{}, nil
	}
}

// parseCanvas parses a "WxH" canvas flag value, e.g. "960x540". An empty
// string means the default canvas.
func parseCanvas(s string) (geometry.Size, error) {
	if s == "" {
		return geometry.DefaultCanvas, nil
	}
	var size geometry.Size
	if _, err := fmt.Sscanf(s, "%gx%g", &size.Width, &size.Height); err != nil {
		return geometry.Size{}, fmt.Errorf("canvas must be WxH in points, got %q: %w", s, err)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return geometry.Size{}, fmt.Errorf("canvas dimensions must be positive, got %q", s)
	}
	return size, nil
}
