package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devopslab/userboard/internal/config"
	"github.com/devopslab/userboard/internal/observability"
	"github.com/devopslab/userboard/internal/store/memory"
	"github.com/devopslab/userboard/internal/userstore"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultPort = 8086

func main() {
	cfg := config.Load(defaultPort)

	log := observability.NewLogger(cfg.Env)

	// optional tracing; only wired when an OTLP endpoint is configured
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(context.Background(), userstore.ServiceName, cfg.OTLPEndpoint)

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				ctx, cancel := config.WithTimeout(5 * time.Second)
				defer cancel()
				_ = shutdown(ctx)
			}()
		}
	}

	// the store lives for the lifetime of the process, seeded with the demo
	// users
	store := memory.NewUsersRepo()
	store.Seed()

	reg := prometheus.NewRegistry()
	router := userstore.NewRouter(cfg, log, store, reg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("user store starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("user store shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
