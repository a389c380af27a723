package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/snowball/internal/api"
	"github.com/Veraticus/snowball/internal/certs"
	"github.com/Veraticus/snowball/internal/config"
	"github.com/Veraticus/snowball/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve repayment plans over HTTP",
		Long: `Start an HTTP server exposing:

  POST /v1/schedule  compute a plan from {cash_flow, horizon, debts}
  POST /v1/rank      rank {debts}
  GET  /healthz      liveness
  GET  /metrics      Prometheus metrics

With --tls a self-signed certificate for localhost is created on first use.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	cmd.Flags().Bool("tls", false, "Serve HTTPS with a self-signed localhost certificate")
	cmd.Flags().String("cert-dir", "", "Directory holding the localhost certificate (default: $HOME/.config/snowball/certs)")
	_ = viper.BindPFlag("serve.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("serve.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("serve.cert_dir", cmd.Flags().Lookup("cert-dir"))

	return cmd
}

func newHTTPServer(addr string) (*http.Server, error) {
	srv, err := api.NewServer(metrics.New(), slog.Default())
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}, nil
}

// certStore returns the store for the configured certificate directory.
func certStore() (*certs.Store, error) {
	dir := config.ExpandPath(viper.GetString("serve.cert_dir"))
	if dir == "" {
		base, err := config.Dir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(base, "certs")
	}
	return certs.NewStore(dir), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	httpServer, err := newHTTPServer(viper.GetString("serve.addr"))
	if err != nil {
		return err
	}

	useTLS := viper.GetBool("serve.tls")
	if useTLS {
		store, err := certStore()
		if err != nil {
			return err
		}
		if httpServer.TLSConfig, err = store.TLSConfig(); err != nil {
			return fmt.Errorf("failed to load certificate: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Listening", "addr", httpServer.Addr, "tls", useTLS)
		if useTLS {
			errCh <- httpServer.ListenAndServeTLS("", "")
			return
		}
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
