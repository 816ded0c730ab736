package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-online/internal/config"
	"shop-online/internal/database"
	"shop-online/internal/handler"
	"shop-online/internal/imagestore"
	"shop-online/internal/repository"
	"shop-online/internal/router"
	"shop-online/internal/service"
	"shop-online/internal/session"

	"github.com/go-co-op/gocron/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shop-online API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize image store with S3 and local fallback
	var images imagestore.Store
	if cfg.Images.S3Enabled {
		images, err = imagestore.NewS3Store(ctx, cfg.Images.Bucket, cfg.Images.Region, cfg.Images.Prefix, cfg.Images.BaseURL, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 image store, falling back to local file system")
			images, err = imagestore.NewFileStore(cfg.Images.LocalDir, cfg.Images.BaseURL, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize image store: %w", err)
			}
		}
	} else {
		images, err = imagestore.NewFileStore(cfg.Images.LocalDir, cfg.Images.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize image store: %w", err)
		}
		logger.Info().Msg("using local file system for product images (S3 disabled)")
	}

	// Guest carts live in memory with a TTL, purged on a schedule
	sessions := session.NewStore(cfg.Session.CartTTL, logger)

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Session.PurgeInterval),
		gocron.NewTask(func() {
			if purged := sessions.PurgeExpired(); purged > 0 {
				logger.Info().Int("purged", purged).Msg("expired guest carts removed")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule guest cart purge: %w", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown scheduler")
		}
	}()

	// Initialize services
	productService := service.NewProductService(productRepo, images, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, sessions, logger)
	checkoutService := service.NewCheckoutService(orderRepo, productRepo, cartRepo, logger)
	orderService := service.NewOrderService(orderRepo, logger)
	userService := service.NewUserService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:  handler.NewProductHandler(productService, logger),
		Category: handler.NewCategoryHandler(categoryService, logger),
		Cart:     handler.NewCartHandler(cartService, cfg.Session.CartTTL, logger),
		Checkout: handler.NewCheckoutHandler(checkoutService, userService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		User:     handler.NewUserHandler(userService, cartService, orderService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.JWTSecret, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
