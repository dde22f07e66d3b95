package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/orcalab/speed/internal/api"
	"github.com/orcalab/speed/pkg/cache"
	"github.com/orcalab/speed/pkg/pipeline"
	"github.com/orcalab/speed/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // Redis address for the description cache
	mongoURI string // MongoDB URI for description storage
	noCache  bool   // disable the description cache
}

// serveCommand creates the serve command for running the HTTP API.
// By default descriptions are cached on disk and stored in memory; a Redis
// cache and a MongoDB store can be enabled for shared deployments.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API for converting and storing descriptions.

Examples:
  speed serve
  speed serve --addr :9090
  speed serve --redis localhost:6379 --mongo mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the description cache")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for description storage")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the description cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	descCache, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}
	defer descCache.Close()

	st, err := c.serveStore(ctx, opts)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := pipeline.NewRunner(descCache, nil, logger)
	server := api.NewServer(st, runner, logger)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// serveCache builds the description cache for the server: Redis when
// configured, otherwise the file cache shared with the CLI.
func (c *CLI) serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redis})
	}
	return newCache(false)
}

// serveStore builds the description store: MongoDB when configured,
// otherwise in-memory.
func (c *CLI) serveStore(ctx context.Context, opts *serveOpts) (store.Store, error) {
	if opts.mongoURI == "" {
		printWarning("No MongoDB URI configured, descriptions are stored in memory")
		return store.NewMemoryStore(), nil
	}
	cfg := store.DefaultMongoConfig()
	cfg.URI = opts.mongoURI
	return store.NewMongoStore(ctx, cfg)
}
