package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmaia/flashdecks/internal/api"
	"github.com/rmaia/flashdecks/internal/config"
	"github.com/rmaia/flashdecks/internal/logger"
	"github.com/rmaia/flashdecks/internal/services"
	"github.com/rmaia/flashdecks/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Flashdecks Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("request_timeout_sec=%d", cfg.RequestTimeoutSec)

	st := store.New(cfg.DataDir)
	if err := st.Load(); err != nil {
		log.Error("failed to load deck store: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DeckService:    services.NewDeckService(st),
		CardService:    services.NewCardService(st),
		StudyService:   services.NewStudyService(st),
		BackupService:  services.NewBackupService(st),
		Version:        st.Version,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Mutations save synchronously, but flush once more on the way out in
	// case the last auto-save hit a transient disk error.
	if err := st.Save(); err != nil {
		log.Error("final save failed: %v", err)
	}

	log.Info("===========================================")
	log.Info("Flashdecks Server Stopped")
	log.Info("===========================================")
}
