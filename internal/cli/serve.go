package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dominochain/pkg/buildinfo"
	"github.com/matzehuels/dominochain/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve starts an HTTP API. POST a tile set to /v1/chains as
{"tiles": [[1, 2], [2, 3], [3, 1]]} or as text/plain "a|b" lines and the
response is the solve result as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			c.Logger.Debug("build", buildinfo.Fields()...)
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Options{
				MaxTiles:       c.Config.Solve.MaxTiles,
				SolveTimeout:   c.Config.Solve.Timeout.Std(),
				RequestTimeout: c.Config.Server.RequestTimeout.Std(),
				SkipFilter:     c.Config.Solve.SkipFilter,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}
