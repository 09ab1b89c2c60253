package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/recipebox/fulfillment/internal/config"
	"github.com/recipebox/fulfillment/internal/handlers"
	"github.com/recipebox/fulfillment/internal/loader"
	"github.com/recipebox/fulfillment/internal/middleware"
	"github.com/recipebox/fulfillment/internal/notify"
	"github.com/recipebox/fulfillment/internal/repository"
	"github.com/recipebox/fulfillment/internal/service"
	"github.com/recipebox/fulfillment/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting fulfillment api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Initialize stock repository
	var stockRepo repository.StockRepository
	if cfg.Stock.DatabasePath != "" {
		sqliteRepo, err := repository.NewSQLiteStockRepository(cfg.Stock.DatabasePath)
		if err != nil {
			log.Error("failed to open stock database", "path", cfg.Stock.DatabasePath, "error", err)
			os.Exit(1)
		}
		defer sqliteRepo.Close()
		stockRepo = sqliteRepo
		log.Info("using sqlite stock repository", "path", cfg.Stock.DatabasePath)
	} else {
		stockRepo = repository.NewInMemoryStockRepository()
		log.Info("using in-memory stock repository")
	}

	// Optionally import a stock file, replacing the current snapshot
	if cfg.Stock.StockFile != "" {
		recipes, err := loader.LoadStock(cfg.Stock.StockFile)
		if err != nil {
			log.Error("failed to load stock file", "path", cfg.Stock.StockFile, "error", err)
			os.Exit(1)
		}
		if err := stockRepo.ReplaceAll(context.Background(), recipes); err != nil {
			log.Error("failed to import stock file", "error", err)
			os.Exit(1)
		}
		log.Info("stock file imported", "path", cfg.Stock.StockFile, "recipes_count", len(recipes))
	}

	// Initialize optional decision event publisher
	var notifier service.DecisionNotifier
	if cfg.Notify.URL != "" {
		publisher, err := notify.NewAMQPPublisher(cfg.Notify.URL, cfg.Notify.Queue)
		if err != nil {
			log.Error("failed to connect to message broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		notifier = publisher
		log.Info("decision events enabled", "queue", cfg.Notify.Queue)
	}

	// Initialize services
	stockService := service.NewStockService(stockRepo)
	fulfillmentService := service.NewFulfillmentService(stockRepo, notifier, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	stockHandler := handlers.NewStockHandler(stockService, log)
	fulfillmentHandler := handlers.NewFulfillmentHandler(fulfillmentService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Stock endpoints
		r.Get("/stock", stockHandler.ListRecipes)
		r.Get("/stock/{recipeId}", stockHandler.GetRecipe)
		r.With(middleware.APIKeyAuth(cfg.Auth)).Put("/stock", stockHandler.ReplaceStock)

		// Feasibility check endpoint
		r.Post("/fulfillment/check", fulfillmentHandler.Check)
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
