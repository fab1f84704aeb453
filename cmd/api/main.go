// Command api is the FightGraphs read API. When PIPELINE_SCHEDULE is set it
// also runs the pipeline on that cron schedule.
//
// Usage:
//
//	fightgraphs-api
//	API_PORT=8080 PIPELINE_SCHEDULE="0 4 * * *" fightgraphs-api

// @title FightGraphs Pipeline API
// @version 1.0.0
// @description Read API over the normalized fight database, plus id derivation and dry-run document mapping.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name FightGraphs
// @license.name MIT
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

	"go.uber.org/zap"

	"github.com/fightgraphs/pipeline/internal/api"
	"github.com/fightgraphs/pipeline/internal/cache"
	"github.com/fightgraphs/pipeline/internal/config"
	"github.com/fightgraphs/pipeline/internal/db"
	"github.com/fightgraphs/pipeline/internal/logger"
	"github.com/fightgraphs/pipeline/internal/maintenance"
	"github.com/fightgraphs/pipeline/internal/schema"
	"github.com/fightgraphs/pipeline/internal/seed"
	"github.com/fightgraphs/pipeline/internal/source"

	_ "github.com/fightgraphs/pipeline/docs" // swagger docs
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.Must(cfg.LogLevel, cfg.Environment)
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	log.Info("Database connected",
		zap.Int("min_conns", cfg.DBPoolMinConns),
		zap.Int("max_conns", cfg.DBPoolMaxConns))

	appCache := cache.New(cfg.CacheEnabled)
	log.Info("Cache initialized", zap.Bool("enabled", cfg.CacheEnabled))

	if cfg.PipelineSchedule != "" {
		src, err := source.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, log)
		if err != nil {
			log.Fatal("Failed to connect to document store", zap.Error(err))
		}
		defer func() {
			closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer closeCancel()
			_ = src.Close(closeCtx)
		}()

		reg, err := schema.New()
		if err != nil {
			log.Fatal("Failed to open schema", zap.Error(err))
		}
		loader := seed.NewLoader(pool, src, cfg.PipelineWorkers, log)
		scheduler := maintenance.New(loader, pool, appCache, maintenance.Config{
			Schedule: cfg.PipelineSchedule,
			Views:    reg.Views(),
		}, log)
		go func() {
			if err := scheduler.Start(ctx); err != nil {
				log.Error("Pipeline scheduler failed", zap.Error(err))
			}
		}()
	}

	router := api.NewRouter(pool, appCache, cfg, log)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting FightGraphs API",
			zap.String("addr", addr),
			zap.String("environment", cfg.Environment),
			zap.String("docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
