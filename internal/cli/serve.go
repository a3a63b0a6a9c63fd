package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/internal/server"
	"github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand serves the trees of a tree file over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		flags   optionFlags
	)

	cmd := &cobra.Command{
		Use:   "serve <tree_file>",
		Short: "Serve treemaps of a tree file over HTTP",
		Long: `Serve treemaps of a tree file over HTTP.

Endpoints:
  GET /trees                      list tree names
  GET /trees/{name}/layout        layout document
  GET /trees/{name}/rectangles    RECTANGLE lines
  GET /trees/{name}/svg|png       rendered treemap
  GET /healthz, /metrics          health and Prometheus metrics

Query parameters width, height, color_by, scale, legend and min_label_side
override the flags given here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Serve.Addr != "" {
				addr = c.Config.Serve.Addr
			}
			opts := flags.options(cmd, c.Config)
			return c.runServe(cmd.Context(), args[0], addr, noCache, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerLayout(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr string, noCache bool, defaults pipeline.Options) error {
	coll, err := io.ImportFile(input)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewPrometheus(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	observability.Install(metrics)
	defer observability.Reset()

	srv := &server.Server{
		Trees:    coll,
		Runner:   runner,
		Defaults: defaults,
		Logger:   c.Logger,
		Gatherer: reg,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	httpServer := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving %d tree(s) from %s", len(coll), input)
	printKeyValue("Address", "http://"+ln.Addr().String())
	c.Logger.Info("listening", "addr", ln.Addr().String(), "trees", coll.Names())

	errc := make(chan error, 1)
	go func() { errc <- httpServer.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
