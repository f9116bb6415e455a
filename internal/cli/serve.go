package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/keggrest/kegg/internal/server"
	"github.com/keggrest/kegg/pkg/observability"
)

// serveCommand creates the serve command, which runs the JSON gateway.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the KEGG operations as a JSON API",
		Long: `Run an HTTP server that exposes the KEGG operations as JSON.

Endpoints live under /api/v1 (info, list, organisms, find, get, seq, conv,
link, compounds). /healthz reports liveness and /metrics serves Prometheus
metrics for the gateway, the KEGG client and its cache.`,
		Example: `  kegg serve
  kegg serve --addr 127.0.0.1:9000 --cache-backend redis --log-format json
  curl localhost:8080/api/v1/link/pathway/hsa:10458`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			hooks := observability.NewPrometheusHooks(reg)
			observability.SetOperationHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			client, closeClient, err := c.newClient(cmd.Context())
			if err != nil {
				return err
			}
			defer closeClient()

			p := newProgress(c.Logger)
			if err := server.New(client, c.Logger, reg).ListenAndServe(cmd.Context(), c.Config.Server.Addr); err != nil {
				return err
			}
			p.done("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
