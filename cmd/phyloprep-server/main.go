// Command phyloprep-server provides a REST API for phyloprep's date and
// alignment operations.
//
// Usage:
//
//	phyloprep-server [options]
//
// Options:
//
//	--port      Port to listen on (default: 8080)
//	--host      Host to bind to (default: localhost)
//	--timeout   Per-request timeout (default: 60s)
//	--verbose   Enable debug logging
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aria-lang/phyloprep-go/api"
)

type serverOptions struct {
	host    string
	port    int
	timeout time.Duration
	verbose bool
}

func main() {
	if err := newServerCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newServerCmd() *cobra.Command {
	opts := &serverOptions{}

	cmd := &cobra.Command{
		Use:          "phyloprep-server",
		Short:        "Serve the phyloprep REST API",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "localhost", "host to bind to")
	cmd.Flags().IntVar(&opts.port, "port", 8080, "port to listen on")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "per-request timeout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serve(opts *serverOptions) error {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	addr := fmt.Sprintf("%s:%d", opts.host, opts.port)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(log, opts.timeout),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: opts.timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Error("could not gracefully shut down", zap.Error(err))
		}
		close(done)
	}()

	log.Info("phyloprep API server starting", zap.String("addr", "http://"+addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	<-done
	log.Info("server stopped")
	return nil
}
