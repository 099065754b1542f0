package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"go.trai.ch/m2/internal/adapters/serve"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultServeAddr is the address Serve listens on when none is given.
	DefaultServeAddr = ":8080"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// ServeOptions configure the repository server.
type ServeOptions struct {
	Addr     string
	Writable bool
	// Listener overrides Addr when set.
	Listener net.Listener
}

// Serve exposes the configured local repository over HTTP until ctx is done.
func (a *App) Serve(ctx context.Context, opts Options, so ServeOptions) (err error) {
	ctx, end := a.span(ctx, opServe, ports.WithAttribute("writable", so.Writable))
	defer end(&err)

	h, err := a.open(opts)
	if err != nil {
		return err
	}
	root, err := a.sessions.LocalRepositoryPath(h.cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create local repository"), "path", root)
	}

	l := so.Listener
	if l == nil {
		addr := so.Addr
		if addr == "" {
			addr = DefaultServeAddr
		}
		var lc net.ListenConfig
		l, err = lc.Listen(ctx, "tcp", addr)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
		}
	}

	srv := &http.Server{
		Handler:           serve.NewHandler(root, a.locker, a.logger, so.Writable),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	a.info("serving %s on %s", root, l.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "repository server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown repository server: %w", err)
		}
		return nil
	})
	return g.Wait()
}
