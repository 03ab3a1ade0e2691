// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/jewelry-storefront/internal/config"
	"github.com/your-org/jewelry-storefront/internal/domain/cart"
	"github.com/your-org/jewelry-storefront/internal/domain/catalog"
	"github.com/your-org/jewelry-storefront/internal/domain/checkout"
	"github.com/your-org/jewelry-storefront/internal/domain/payment"
	"github.com/your-org/jewelry-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/jewelry-storefront/internal/infrastructure/feed"
	"github.com/your-org/jewelry-storefront/internal/interfaces/http"
	"github.com/your-org/jewelry-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/jewelry-storefront/internal/interfaces/http/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := middleware.NewLogger(cfg)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Wire domain services
	feedClient := feed.NewClient(cfg, logger)
	catalogProvider := catalog.NewProvider(feedClient, logger)
	cartService := cart.NewService(redis.NewKV(redisClient.GetClient()), cfg.Checkout.CartTTL, logger)
	checkoutService := checkout.NewService(feedClient, cartService, cfg.Checkout, logger)
	paymentService := payment.NewService(cfg, logger)

	// Warm the catalog; a failed warm-up is not fatal, the first request
	// retries the load
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.Feed.Timeout)
	if _, err := catalogProvider.Store(warmCtx); err != nil {
		log.Printf("Warning: Catalog warm-up failed: %v", err)
	}
	cancelWarm()

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, redisClient, routes.Services{
		Catalog:  catalogProvider,
		Cart:     cartService,
		Checkout: checkoutService,
		Payment:  paymentService,
	}, logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
