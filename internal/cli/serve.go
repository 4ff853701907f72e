package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ovlink/internal/httpapi"
	"ovlink/internal/linking"
)

const defaultAddr = "127.0.0.1:9464"

// listen is swapped in tests to bind an ephemeral port.
var listen = func(addr string) (net.Listener, error) { return net.Listen("tcp", addr) }

// shutdownSignals is swapped in tests to stop the server without a signal.
var shutdownSignals = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		bindOnStart bool
		corsOrigins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve binder diagnostics and metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			if len(corsOrigins) == 0 {
				corsOrigins = a.cfg.CORSOrigins
			}
			opts, cache, err := a.setup()
			if err != nil {
				return err
			}
			b := linking.NewBinder(opts)
			if bindOnStart {
				if _, err := b.Bind(); err != nil {
					a.log.Warn().Err(err).Msg("bind on start failed; serving status anyway")
				}
			}

			httpapi.SetLogger(a.log)
			httpapi.SetCORSOptions(len(corsOrigins) > 0, corsOrigins, nil, nil)
			srv := &http.Server{
				Handler:           httpapi.NewMux(httpapi.NewService(b, cache, a.cfg.Getenv(getenv))),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ln, err := listen(addr)
			if err != nil {
				return errorf("listen %s: %w", addr, err)
			}

			ctx, stop := shutdownSignals(cmd.Context())
			defer stop()
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.log.Info().Str("addr", ln.Addr().String()).Msg("diagnostics listening")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(sctx); err != nil {
					a.log.Error().Err(err).Msg("graceful shutdown")
				}
				return b.Unbind()
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults OVLINK_ADDR or "+defaultAddr+")")
	cmd.Flags().BoolVar(&bindOnStart, "bind", false, "Bind the library before serving")
	cmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	return cmd
}
