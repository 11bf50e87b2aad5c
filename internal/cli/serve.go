package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchrow/pkg/pipeline"
	"github.com/matzehuels/stitchrow/pkg/server"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the row encoder over HTTP",
		Long: `Serve the row encoder over HTTP.

Endpoints:
  GET  /healthz
  GET  /version
  POST /v1/encode?format=json&rows=1-10   (chart file in the body)
  POST /v1/encode/{row}

Example:
  curl --data-binary @sweater.svg "localhost:8080/v1/encode?filename=sweater.svg"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := server.Options{
				Addr:           c.Config.Server.Addr,
				MaxUploadBytes: c.Config.Server.MaxUploadBytes,
				Defaults: pipeline.Options{
					Palette:  c.Config.Palette,
					CellSize: c.Config.Source.CellSize,
					Format:   c.Config.Output.Format,
				},
			}
			if cmd.Flags().Changed("addr") {
				opts.Addr = addr
			}

			err = server.New(runner, c.Logger, opts).ListenAndServe(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the chart cache")

	return cmd
}
