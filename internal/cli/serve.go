package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/backoffice/internal/httpapi"
	"github.com/mesh-intelligence/backoffice/internal/media"
	"github.com/mesh-intelligence/backoffice/internal/paths"
)

func newServeCmd(e *env) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := e.attach(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			store, err := e.openMedia(ctx)
			if err != nil {
				return err
			}

			s := e.settings
			if addr == "" {
				addr = s.HTTP.Addr
			}
			srv := httpapi.NewServer(a.svc, httpapi.Config{
				Addr:              addr,
				SessionSecret:     s.SessionSecret,
				SecureCookies:     s.HTTP.SecureCookies,
				TrustProxy:        s.HTTP.TrustProxy,
				PageSize:          s.PageSize,
				LowStockThreshold: s.LowStockThreshold,
				Features:          s.Features,
				Logger:            e.logger,
				Media:             store,
				Registry:          a.registry,
			})
			return srv.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: http.addr from config)")
	return cmd
}

// openMedia opens the configured image store. Filesystem media defaults to
// a directory under the data directory.
func (e *env) openMedia(ctx context.Context) (media.Store, error) {
	cfg := e.settings.Media
	if cfg.Driver == "" || media.Driver(cfg.Driver) == media.DriverFilesystem {
		dataDir, err := e.dataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		if cfg.Dir, err = paths.ResolveMediaDir(cfg.Dir, dataDir); err != nil {
			return nil, fmt.Errorf("resolve media dir: %w", err)
		}
	}
	store, err := media.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open media store: %w", err)
	}
	return store, nil
}
