package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staffroster-web/internal/infrastructure/config"
	"staffroster-web/internal/infrastructure/web"
	apiRepo "staffroster-web/internal/interface/repository"
	"staffroster-web/internal/usecase"
	"staffroster-web/pkg/logger"
	"staffroster-web/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Staff Roster Web")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up repositories against the remote roster service
	authRepository := apiRepo.NewAuthAPIRepository(cfg.RosterAPIURL, cfg.RequestTimeout, log)
	rosterRepository := apiRepo.NewRosterAPIRepository(cfg.RosterAPIURL, cfg.RequestTimeout, log)
	userRepository := apiRepo.NewUserAPIRepository(cfg.RosterAPIURL, cfg.RequestTimeout, log)

	// Set up session manager and metrics
	sessionManager := usecase.NewSessionManager(authRepository, cfg.SessionTTL, log)
	m := metrics.NewMetrics("staffroster")

	// Set up the web frontend
	webServer := web.NewServer(sessionManager, rosterRepository, userRepository, m, cfg.PageSize, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      webServer.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "upstream", cfg.RosterAPIURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Staff Roster Web stopped")
}
