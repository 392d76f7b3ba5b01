package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/arkanandi/finlock/adapters"
	mongoadapter "github.com/arkanandi/finlock/adapters/mongo"
	"github.com/arkanandi/finlock/adapters/qr"
	"github.com/arkanandi/finlock/domain/repositories"
	"github.com/arkanandi/finlock/internal/api"
	"github.com/arkanandi/finlock/internal/auth"
	"github.com/arkanandi/finlock/internal/config"
	"github.com/arkanandi/finlock/usecase"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Pick the storage backend: MongoDB when configured, in-memory otherwise
	var (
		deviceRepo   repositories.DeviceRepository
		customerRepo repositories.CustomerRepository
	)
	if cfg.MongoURI != "" {
		client, err := mongoadapter.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			logger.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Close(ctx)
		}()
		deviceRepo = mongoadapter.NewDeviceRepository(client.Database)
		customerRepo = mongoadapter.NewCustomerRepository(client.Database)
	} else {
		logger.Warn("MONGODB_URI not set, using in-memory storage")
		deviceRepo = adapters.NewMemoryDeviceRepository()
		customerRepo = adapters.NewMemoryCustomerRepository()
	}

	// Initialize services
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))
	qrEncoder := qr.NewEncoder()
	deviceService := usecase.NewDeviceService(deviceRepo, tokenService, qrEncoder, logger)
	customerService := usecase.NewCustomerService(customerRepo, deviceRepo, logger)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	api.InitRoutes(e, deviceService, customerService, logger)

	// Periodic liveness tick, every five minutes
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			logger.Info("Server is alive and running")
		}
	}()

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
