package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"tailscale.com/tsnet"

	"github.com/akyro/liftlog/internal/config"
	"github.com/akyro/liftlog/internal/ingest/alpha"
	"github.com/akyro/liftlog/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the workout HTTP API",
		Long: `Serve the JSON HTTP API on server.host:server.port, or on port 80 of a
tailnet node named tailscale.hostname when tailscale.enabled is set.

Write endpoints require the X-API-Key header when auth.api_key is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}

			srv := server.New(store, alpha.NewProvider(store, a.log), a.cfg.Auth.APIKey, a.log)
			listener, stop, err := a.listen()
			if err != nil {
				return err
			}
			defer stop()
			a.log.Info("server starting", "addr", listener.Addr().String(), "version", Version, "auth", a.cfg.Auth.APIKey != "")

			return serveUntilDone(cmd.Context(), &http.Server{Handler: srv}, listener, a)
		},
	}
}

// listen opens a tsnet listener when tailscale is enabled, otherwise a TCP
// listener on server.host:server.port. stop shuts down the tsnet node.
func (a *app) listen() (net.Listener, func(), error) {
	if !a.cfg.Tailscale.Enabled {
		l, err := net.Listen("tcp", a.cfg.Server.Addr())
		if err != nil {
			return nil, nil, err
		}
		return l, func() {}, nil
	}

	ts := newTSNetServer(a.cfg.Tailscale, a.log)
	if err := ts.Start(); err != nil {
		return nil, nil, fmt.Errorf("tsnet start: %w", err)
	}
	l, err := ts.Listen("tcp", ":80")
	if err != nil {
		ts.Close()
		return nil, nil, fmt.Errorf("tsnet listen: %w", err)
	}
	a.log.Info("tsnet node started", "hostname", a.cfg.Tailscale.Hostname)
	return l, func() { ts.Close() }, nil
}

func newTSNetServer(cfg config.TailscaleConfig, log *slog.Logger) *tsnet.Server {
	return &tsnet.Server{
		Hostname: cfg.Hostname,
		Dir:      cfg.StateDir,
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...), "component", "tsnet")
		},
	}
}

// serveUntilDone serves on l until ctx is canceled, then shuts down
// gracefully.
func serveUntilDone(ctx context.Context, httpSrv *http.Server, l net.Listener, a *app) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info("server stopped")
	return nil
}
