package cli

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/internal/server"
	"github.com/kochwerk/kochwerk/pkg/archive"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

The serve command exposes the pipeline over HTTP: figure generation,
rendering, measurement, a level-by-level websocket stream, and the
figure archive. The archive persists to MongoDB when [archive] uri is
set in the config file; otherwise entries live in memory and vanish
with the process.

The server drains in-flight requests on SIGINT before exiting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8080)")

	return cmd
}

// runServe builds the runner and archive store and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg := c.cfg()
	if addr == "" {
		addr = net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	store, err := c.newArchiveStore(ctx)
	if err != nil {
		return fmt.Errorf("initialize archive: %w", err)
	}
	defer store.Close(ctx)

	srv := server.New(server.Options{
		Runner:   runner,
		Store:    store,
		Logger:   c.Logger,
		MaxLevel: cfg.Defaults.MaxLevel,
	})
	return srv.ListenAndServe(ctx, addr)
}

// newArchiveStore returns the archive backend the config selects: MongoDB
// when a URI is set, an in-process store otherwise.
func (c *CLI) newArchiveStore(ctx context.Context) (archive.Store, error) {
	cfg := c.cfg()
	if cfg.Archive.URI == "" {
		return archive.NewMemoryStore(), nil
	}
	return archive.NewMongoStore(ctx, cfg.Archive.URI, cfg.Archive.Database, cfg.Archive.Collection)
}
