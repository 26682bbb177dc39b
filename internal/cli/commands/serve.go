package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conduit-lang/tdexplorer/internal/cli/ui"
	"github.com/conduit-lang/tdexplorer/internal/web/response"
	"github.com/conduit-lang/tdexplorer/internal/web/router"
	"github.com/conduit-lang/tdexplorer/internal/web/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the explorer as linked web pages",
		Long: `Start an HTTP server with one page per report:

  /types                             typed data definitions
  /types/{key}                       one definition
  /entity/{entity-type}/{id}         entity fields
  /entity/{entity-type}/{id}/{field} one field
  /constraints                       validation constraints
  /explore                           entity entry form

Append ?format=json to any report page for JSON. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := opts.open(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}

			srv, err := newServer(a)
			if err != nil {
				return err
			}
			if err := srv.Listen(); err != nil {
				return err
			}

			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Serving on %s", serverURL(srv.Addr())), opts.noColor)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")
	return cmd
}

// newServer wires the explorer routes into an HTTP server.
func newServer(a *app) (*server.Server, error) {
	renderer, err := response.NewRenderer(a.logger)
	if err != nil {
		return nil, err
	}
	linker := router.PathLinker{}
	handler, err := router.New(router.Config{
		Reports:     a.explorer(linker),
		EntityTypes: a.registry,
		Renderer:    renderer,
		Linker:      linker,
		Logger:      a.logger,
	})
	if err != nil {
		return nil, err
	}
	for _, route := range handler.Routes() {
		a.logger.Debug("route registered",
			zap.String("method", route.Method),
			zap.String("pattern", route.Pattern),
			zap.Strings("parameters", route.Parameters))
	}

	cfg := server.DefaultConfig(handler)
	cfg.Address = a.cfg.Server.Address()
	cfg.ShutdownTimeout = a.cfg.Server.ShutdownTimeout
	if a.db != nil {
		cfg.Database = server.DefaultDatabaseConfig(a.db)
	}
	return server.New(cfg, a.logger)
}

func serverURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
