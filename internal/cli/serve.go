package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckplan/deckplan/pkg/api"
)

// shutdownGrace bounds how long in-flight requests may run after the
// process is asked to stop.
const shutdownGrace = 10 * time.Second

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend backendFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout engine as an HTTP service",
		Long: `Run the layout engine as an HTTP service.

The serve command exposes plan, arrange, fit, and mutation-notification
endpoints under /v1, plus a /healthz liveness probe. Configure a metadata
backend with --api-base or --mongo-uri and a shared cache with --redis;
with no flags the service runs self-contained on the default canvas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, backend)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	backend.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, backend backendFlags) error {
	eng, err := c.newEngine(ctx, backend)
	if err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(eng, c.Logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
