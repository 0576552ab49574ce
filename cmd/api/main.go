package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"Todo/internal/app"
	"Todo/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.Printf("config loaded, env=%s", cfg.App.Env)

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("app init: %v", err)
	}
	storage, cache := application.Backends()
	log.Printf("app ready: storage=%s cache=%s version=%s", storage, cache, cfg.App.Version)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
		}
	case <-ctx.Done():
		log.Printf("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := application.Close(shutdownCtx); err != nil {
		log.Printf("close: %v", err)
	}
}
