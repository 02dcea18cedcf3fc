package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tether/internal/api"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cache cacheFlags
		mongo mongoFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the geometry API over HTTP",
		Long: `Serve the geometry API over HTTP.

Computed geometry is cached in the local cache directory, or in Redis when
--redis is set so that several instances share it. Registered elements live
in memory, or in MongoDB when --mongo is set.`,
		Example: `  tether serve --addr :9000
  TETHER_REDIS_URL=redis://localhost:6379/0 tether serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			runner, err := c.newRunner(ctx, cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			var store api.ElementStore
			if mongo.uri != "" {
				s, err := mongo.connect(ctx)
				if err != nil {
					return err
				}
				defer s.Close(context.Background())
				store = s
			}

			srv := api.New(runner, store, c.Logger)
			printInfo("Serving on %s", StyleHighlight.Render(addr))
			printNextStep("Try", "curl -s localhost"+addr+"/healthz")

			err = srv.ListenAndServe(ctx, addr)
			if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
				printSuccess("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cache.register(cmd)
	mongo.register(cmd)
	return cmd
}
