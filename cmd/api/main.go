package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/agenda/internal/cache"
	"github.com/joshua-takyi/agenda/internal/config"
	"github.com/joshua-takyi/agenda/internal/connect"
	"github.com/joshua-takyi/agenda/internal/container"
	"github.com/joshua-takyi/agenda/internal/routes"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)
	logger.Info("Starting agenda API server", "service", cfg.ServiceName, "environment", cfg.Environment)

	var cld *cloudinary.Cloudinary
	if cfg.ServiceName == config.ServiceClientes {
		cld, err = connect.CloudinaryCredentials(cfg)
		if err != nil {
			logger.Error("Failed to configure Cloudinary", "error", err)
			os.Exit(1)
		}
	}

	var geoCache *cache.Redis
	if cfg.ServiceName == config.ServiceClientes && cfg.RedisURL != "" {
		geoCache, err = cache.NewRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn("Geocode cache disabled", "error", err)
			geoCache = nil
		} else {
			logger.Info("Geocode cache enabled", "ttl", cfg.GeocodeCacheTTL)
		}
	}

	mongoClient, err := connect.MongoDBConnect(cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to MongoDB successfully", "database", cfg.MongoDBDatabase)

	appContainer := container.NewContainer(cfg, logger, mongoClient, cld, geoCache)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := appContainer.Repo.EnsureIndexes(indexCtx, appContainer.Collections()...); err != nil {
		logger.Warn("Could not ensure indexes", "error", err)
	}
	cancelIndexes()

	router := routes.SetupRoutes(appContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	if geoCache != nil {
		if err := geoCache.Close(); err != nil {
			logger.Error("Error closing Redis connection", "error", err)
		}
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel(cfg)}

	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func logLevel(cfg *config.Config) slog.Level {
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if cfg.IsDevelopment() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
