package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gwi.com/room-redesign/internal/api"
	"gwi.com/room-redesign/internal/config"
	"gwi.com/room-redesign/internal/core"
	"gwi.com/room-redesign/internal/logging"
	"gwi.com/room-redesign/internal/store"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig

	// Setup logging
	logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.Debug("Service starting in DEBUG mode")

	resetSession := flag.Bool("reset-session", false, "Forget the signed-in user and exit")
	flag.Parse()

	// Initialize database store
	dbStore, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbStore.Close()

	if *resetSession {
		if err := dbStore.Delete(store.CurrentUserKey); err != nil {
			slog.Error("Failed to reset session", "error", err)
			os.Exit(1)
		}
		slog.Info("Session reset. Exiting.")
		return
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	app := core.NewApp(dbStore, core.Options{Location: loc})
	app.Init()

	ctx := context.Background()

	// Initialize AI gateways
	llmService, err := core.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.IdentifyModel)
	if err != nil {
		slog.Error("Failed to initialize identification model", "error", err)
		os.Exit(1)
	}
	defer llmService.Close()

	imageService, err := core.NewImageService(ctx, cfg.GeminiAPIKey, cfg.RedesignModel)
	if err != nil {
		slog.Error("Failed to initialize image model", "error", err)
		os.Exit(1)
	}

	designService := core.NewDesignService(app, llmService, imageService)

	// Initialize API Handler and Router
	apiHandler := api.NewAPIHandler(app, designService)
	router := api.NewRouter(apiHandler, cfg.CORSAllowedOrigins)

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:        serverAddr,
		Handler:     router,
		ReadTimeout: 30 * time.Second, // photos arrive as large JSON bodies
		// No write timeout: image generation has no local deadline.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", serverAddr, "identify_model", cfg.IdentifyModel, "redesign_model", cfg.RedesignModel)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen", "addr", serverAddr, "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting gracefully")
}
