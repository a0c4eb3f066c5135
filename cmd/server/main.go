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

	"estoquecestas/internal/config"
	"estoquecestas/internal/infra"
	"estoquecestas/internal/repository"
	"estoquecestas/internal/router"
	"estoquecestas/internal/service"
	"estoquecestas/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timezone")
	}
	agora := service.RelogioPadrao(loc)

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("REDIS_URL not set: stock cache and PDF receipts disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// PDF receipts need both Redis and the feature flag.
	var dispatcher *worker.Dispatcher
	if rdb != nil && cfg.ReciboPDF {
		dispatcher = worker.NewDispatcher(rdb, infra.NewCircuitBreaker(infra.DefaultCBConfig()))
		handlers := &worker.WorkerHandlers{
			Recibo: worker.NewReciboWorker(repository.NewHistoricoRepository(db), cfg.HistoricoDir, loc),
		}
		g.Go(func() error {
			worker.RunWorkerPool(ctx, dispatcher, handlers, cfg.WorkerPoolSize)
			return nil
		})
	}

	alerta := worker.NewAlertaValidade(service.NewEstoqueService(repository.NewLoteRepository(db), rdb, agora), agora)
	g.Go(func() error {
		return alerta.Run(ctx, loc, cfg.AlertaValidadeHorario)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.New(cfg, db, rdb, dispatcher, agora),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g.Go(func() error {
		log.Info().Msgf("estoque de cestas listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown on SIGINT / SIGTERM or when any component fails
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
