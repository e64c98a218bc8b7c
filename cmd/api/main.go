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

	"pokedex-insights-go/internal/config"
	"pokedex-insights-go/internal/dashboard"
	"pokedex-insights-go/internal/dataset"
	"pokedex-insights-go/internal/logger"
	"pokedex-insights-go/internal/pokeapi"
	"pokedex-insights-go/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel})
	log.WithField("service", "pokedex-insights-go").Info("starting service")

	opts := cfg.ClientOptions()
	opts.Logger = log
	client := pokeapi.New(opts)

	var source dashboard.Source = client
	if cfg.DatasetPath != "" {
		log.WithField("dataset_path", cfg.DatasetPath).Info("using workbook snapshot")
		source = dataset.Snapshot{Path: cfg.DatasetPath, Logger: log}
	}
	svc := dashboard.New(source, client, log)

	// the collection is fetched once per process
	loadCtx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
	err = svc.Load(loadCtx)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to load pokemon data")
	}

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(svc, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
