package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"product-admin/internal/config"
	"product-admin/internal/database"
	"product-admin/internal/logger"
	"product-admin/internal/repository"
	"product-admin/internal/server"
	"product-admin/internal/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	migrateStatus := flag.Bool("migrate-status", false, "print migration status and exit")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting product admin API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize database
	dbService, err := database.New(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	db := dbService.DB()

	// Check database health
	health := dbService.Health()
	log.Info("Database health check", zap.Any("health", health))

	if *migrateStatus {
		if err := database.GetMigrationStatus(db); err != nil {
			log.Fatal("Failed to get migration status", zap.Error(err))
		}
		os.Exit(0)
	}

	// Run migrations
	if err := database.RunMigrations(db, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully")

	// Expired refresh tokens accumulate across restarts, clear them out
	if removed, err := repository.NewRefreshTokenRepository(db).DeleteExpired(context.Background()); err != nil {
		log.Warn("Failed to clean up expired refresh tokens", zap.Error(err))
	} else if removed > 0 {
		log.Info("Removed expired refresh tokens", zap.Int64("count", removed))
	}

	// Provision the test editor account so the admin tooling can sign in
	if cfg.Seed.EditorPassword != "" {
		userService := service.NewUserService(
			repository.NewUserRepository(db),
			repository.NewRefreshTokenRepository(db),
			cfg.JWT.Secret,
		)
		user, err := userService.ProvisionEditor(context.Background(), cfg.Seed.EditorEmail, cfg.Seed.EditorPassword)
		if err != nil {
			log.Fatal("Failed to provision editor account", zap.Error(err))
		}
		log.Info("Editor account ready", zap.String("email", user.Email))
	}

	// Optional redis-backed rate limiting
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, requests will not be rate limited", zap.Error(err))
		}
	}

	// Create server
	srv := server.NewServer(cfg, log, db, redisClient)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
