package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/norsbakery/storefront/config"
	"github.com/norsbakery/storefront/internal/app/controller"
	"github.com/norsbakery/storefront/internal/app/repository"
	"github.com/norsbakery/storefront/internal/app/service"
	"github.com/norsbakery/storefront/internal/db"
	"github.com/norsbakery/storefront/internal/middleware"
	"github.com/norsbakery/storefront/internal/router"
	"github.com/norsbakery/storefront/internal/scheduler"
	"github.com/norsbakery/storefront/internal/view"
	"github.com/norsbakery/storefront/pkg/catalogapi"
	"github.com/norsbakery/storefront/pkg/logger"
	redispkg "github.com/norsbakery/storefront/pkg/redis"
	"github.com/norsbakery/storefront/pkg/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: logFormat == "console",
	})

	logger.Info("Starting Nor's Bakery storefront", map[string]interface{}{
		"environment":  cfg.Server.Environment,
		"port":         cfg.Server.Port,
		"log_level":    logLevel,
		"cart_store":   cfg.Cart.Store,
		"order_source": cfg.Orders.Source,
	})

	if cfg.NeedsDatabase() {
		if err := db.Initialize(&cfg.Database); err != nil {
			logger.Fatal("Failed to initialize database", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", err)
			}
		}()
	}

	// Cart snapshots
	var cartRepo repository.CartRepository
	var cleanup *scheduler.CartCleanupScheduler
	switch cfg.Cart.Store {
	case config.CartStoreDatabase:
		if err := db.Migrate(); err != nil {
			logger.Fatal("Failed to run migrations", err)
		}
		gormCarts := repository.NewGormCartRepository(db.GetDB())
		cartRepo = gormCarts
		cleanup = scheduler.NewCartCleanupScheduler(gormCarts, cfg.Cart.CleanupCron, cfg.Cart.TTL)
		if err := cleanup.Start(); err != nil {
			logger.Fatal("Failed to start cart cleanup scheduler", err)
		}
		defer cleanup.Stop()
	default:
		if err := redispkg.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redispkg.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		cartRepo = repository.NewRedisCartRepository(redispkg.GetClient(), cfg.Cart.TTL)
	}

	// External clients
	catalogClient, err := catalogapi.NewClient(catalogapi.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog client", err)
	}
	supabaseClient, err := supabase.NewClient(supabase.Config{
		URL:     cfg.Supabase.URL,
		AnonKey: cfg.Supabase.AnonKey,
		Timeout: cfg.Supabase.Timeout,
	})
	if err != nil {
		logger.Fatal("Failed to create Supabase client", err)
	}

	// Order history
	var orderRepo repository.OrderRepository
	if cfg.Orders.Source == config.OrderSourceDatabase {
		orderRepo = repository.NewOrderRepository(db.GetDB())
	} else {
		orderRepo = repository.NewSupabaseOrderRepository(supabaseClient)
	}

	// Initialize services
	cartService := service.NewCartService(cartRepo, cfg.Cart.Key)
	catalogService := service.NewCatalogService(catalogClient)
	authService := service.NewAuthService(supabaseClient)
	profileService := service.NewProfileService(authService, orderRepo)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to parse page templates", err)
	}

	// Initialize controllers
	sessions := middleware.NewSessionMiddleware(&cfg.Session)
	pages := controller.NewPageBuilder(cartService)

	r := router.NewRouter(
		controller.NewPageController(catalogService, pages),
		controller.NewCartController(cartService, catalogService),
		controller.NewProductController(catalogService),
		controller.NewAuthController(authService, sessions, pages),
		controller.NewProfileController(profileService, pages),
		sessions,
		renderer,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
