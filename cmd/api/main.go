package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/askelund/learnly/internal/bootstrap"
	"github.com/askelund/learnly/internal/obs"
	"github.com/askelund/learnly/internal/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	obs.Init()

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to set up database")
	}
	defer dbPool.Close()

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to build dependencies")
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lgr.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lgr.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lgr.Error().Err(err).Msg("Forced shutdown")
	}
	lgr.Info().Msg("Server stopped")
}
