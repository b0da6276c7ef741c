package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"site-analytics-service/internal/config"
	"site-analytics-service/internal/controller"
	httpserver "site-analytics-service/internal/http"
	"site-analytics-service/internal/logging"
	"site-analytics-service/internal/service"
	"site-analytics-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.NewFileStore(cfg.DataFile)
	writer, err := service.NewLogWriter(st, cfg.WriterBufferSize, cfg.WriterFlushAfter, cfg.WriterFlushEvery)
	if err != nil {
		logging.Fatal().Err(err).Msg("open analytics log")
	}

	analyticsService := service.NewAnalyticsService(writer, cfg.TopContentLimit)
	analyticsController := controller.NewAnalyticsController(analyticsService, cfg.AdminKey)

	server := httpserver.NewServer(cfg, analyticsController)

	go func() {
		<-ctx.Done()
		logging.Info().Msg("shutting down")
		if err := server.Shutdown(); err != nil {
			logging.Error().Err(err).Msg("server shutdown")
		}
	}()

	logging.Info().Str("addr", cfg.HTTPPort).Str("data_file", cfg.DataFile).Msg("starting server")
	if err := server.Listen(cfg.HTTPPort); err != nil {
		logging.Error().Err(err).Msg("server stopped")
	}

	// Drain pending appends and flush the document before exit.
	writer.Shutdown()
}
