package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/claims"
	"github.com/geekyharshvinfo-lgtm/agentic-claims/coreengine/observability"
)

var (
	serveAddr     string
	traceEndpoint string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine with metrics and health endpoints",
	Long: `Seeds the claim set, wires the pipeline engine and exposes:

  /metrics   Prometheus metrics
  /healthz   liveness
  /claims    current claim set as JSON
  /stats     status and SLA breakdown as JSON

Shuts down cleanly on SIGINT/SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":9090", "listen address")
	serveCmd.Flags().StringVar(&traceEndpoint, "trace-endpoint", "", "OTLP gRPC collector endpoint (tracing off when empty)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	if traceEndpoint != "" {
		shutdown, err := observability.InitTracer("claims-review-engine", traceEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(shutdownCtx)
		}()
		logger.Info("tracing_enabled", "endpoint", traceEndpoint)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/claims", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(eng.repo.List())
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(claims.ComputeStats(eng.repo.List()))
	})

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server_listening", "addr", serveAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("server_stopping")
		eng.seq.Reset()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
