package cli

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fluvia/internal/api"
	"github.com/matzehuels/fluvia/pkg/cache"
	"github.com/matzehuels/fluvia/pkg/pipeline"
)

// apiKeyPrefix keeps API results apart from CLI results in a shared cache.
const apiKeyPrefix = "api:"

type serveFlags struct {
	addr     string
	maxCells int
	noCache  bool
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{addr: ":8080", maxCells: api.DefaultMaxCells}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve terrain generation over HTTP.

POST /v1/generate accepts a JSON object with any subset of the generation
options and responds with the same document 'fluvia generate' writes.
Results are cached like CLI runs; set FLUVIA_REDIS_URL or FLUVIA_MONGO_URI
to share the cache between instances.`,
		Example: `  fluvia serve --addr :9000
  curl -s -X POST localhost:9000/v1/generate -d '{"seed": 7, "width": 128, "height": 128}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", flags.addr, "listen address")
	cmd.Flags().IntVar(&flags.maxCells, "max-cells", flags.maxCells, "largest grid a request may ask for")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, flags serveFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store, err := newCache(cmd, flags.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, apiKeyPrefix), logger)
	defer runner.Close()

	srv := api.New(runner, logger)
	srv.MaxCells = flags.maxCells

	printSuccess("Serving on %s", StyleLink.Render(flags.addr))
	printKeyValue("Max cells", StyleNumber.Render(strconv.Itoa(flags.maxCells)))
	printDetail("Press Ctrl+C to stop")

	err = srv.Serve(ctx, flags.addr)
	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped")
		return nil
	}
	return err
}
