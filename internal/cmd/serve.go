package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/server"
)

type ServeCmd struct {
	Addr     string `help:"Listen address." default:""`
	Snapshot string `help:"Snapshot JSON path (default: jobs.json in the config dir)."`
	Remote   string `help:"Raw URL to load the snapshot from instead of the local file."`
	TTL      int    `help:"Remote cache TTL in seconds." default:"60"`
}

func (s *ServeCmd) Run(ctx *Context) error {
	provider, err := s.provider(ctx)
	if err != nil {
		return err
	}

	addr := firstNonEmpty(s.Addr, ctx.Config.ServeAddr)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(provider, ctx.Logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	ctx.UI.Infof("Dashboard listening on %s", addr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *ServeCmd) provider(ctx *Context) (server.Provider, error) {
	remote := firstNonEmpty(s.Remote, ctx.Config.RemoteURL)
	if strings.TrimSpace(remote) != "" {
		client, err := network.NewClient(nil)
		if err != nil {
			return nil, err
		}
		return server.NewRemoteProvider(remote, time.Duration(s.TTL)*time.Second, client), nil
	}

	path := s.Snapshot
	if strings.TrimSpace(path) == "" {
		var err error
		path, err = ctx.Config.ResolveSnapshotPath()
		if err != nil {
			return nil, err
		}
	}
	return server.NewFileProvider(path), nil
}
