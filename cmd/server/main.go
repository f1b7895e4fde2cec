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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/cache"
	"github.com/lacson1/UK-property-management/internal/config"
	"github.com/lacson1/UK-property-management/internal/database"
	"github.com/lacson1/UK-property-management/internal/handlers"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/repository"
	"github.com/lacson1/UK-property-management/internal/services"
	"github.com/lacson1/UK-property-management/internal/store"
	"github.com/lacson1/UK-property-management/internal/worker"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env)
	log.Info("Starting property management API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"store":       cfg.Store.Backend,
		"ai_enabled":  cfg.AI.Enabled,
	})

	clock := services.NewClock(cfg.Server.Location())

	st, closeStore := openStore(cfg, log)
	defer closeStore()

	startCtx, cancelStart := context.WithTimeout(context.Background(), startupTimeout)
	if err := st.Load(startCtx, cfg.Store.SeedDemoData, clock()); err != nil {
		log.Fatal("Failed to load application state", err, nil)
	}
	cancelStart()

	gateway, closeCache := newGateway(cfg, log)
	defer closeCache()

	// Extraction runs on a worker pool so uploads return immediately.
	queue := worker.NewExtractionQueue(cfg.Extraction.QueueSize, cfg.Extraction.Workers, log)
	documentService := services.NewDocumentService(st, gateway, queue, clock, log)
	queue.Subscribe(documentService.HandleExtraction)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	queue.Start(workerCtx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(log, handlers.RouterConfig{
		Env:            cfg.Server.Env,
		Backend:        cfg.Store.Backend,
		CORSOrigins:    cfg.CORS.Origins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes(),
		Store:          st,
	}, handlers.Services{
		Properties:   services.NewPropertyService(st, clock, log),
		Tenants:      services.NewTenantService(st, log),
		Maintenance:  services.NewMaintenanceService(st, gateway, clock, log),
		Transactions: services.NewTransactionService(st, gateway, clock, log),
		Documents:    documentService,
		Tradespeople: services.NewTradespersonService(st, log),
		Advisor:      services.NewAdvisorService(st, gateway, clock, log),
		Dashboard:    services.NewDashboardService(st, clock),
		Exports:      services.NewExportService(st, clock, log),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	// Let queued extractions finish before the workers stop. Whatever is
	// still running when the shutdown budget runs out is cancelled.
	if err := queue.Shutdown(shutdownCtx); err != nil {
		log.Error("Extraction queue did not drain", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}
	stopWorkers()

	log.Info("Server exited", nil)
}

// openStore creates the application-state store. The postgres backend
// migrates the schema and persists every state change as a snapshot.
func openStore(cfg *config.Config, log *logger.Logger) (*store.Store, func()) {
	if cfg.Store.Backend != config.BackendPostgres {
		return store.New(log), func() {}
	}

	if cfg.Database.Migrate {
		if err := database.Migrate(cfg.Database); err != nil {
			log.Fatal("Failed to migrate database", err, map[string]interface{}{
				"host": cfg.Database.Host,
				"name": cfg.Database.Name,
			})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	repo := repository.NewSnapshotRepository(db, repository.DefaultSnapshotRetention)
	return store.New(log, store.WithPersister(repo)), db.Close
}

// newGateway builds the AI gateway. Without AI every narrative call fails
// with a 502 while triage and extraction fall back to their defaults.
func newGateway(cfg *config.Config, log *logger.Logger) (*ai.Gateway, func()) {
	var completer ai.Completer = ai.Unavailable{}
	if cfg.AI.Enabled {
		completer = ai.NewGeminiClient(ai.GeminiConfig{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		}, log)
	}

	if cfg.Redis.Addr == "" {
		return ai.NewGateway(completer, log), func() {}
	}

	narratives := cache.New(cache.NewRedisClient(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}), cfg.Redis.TTL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := narratives.Ping(ctx); err != nil {
		log.Warn("Narrative cache unreachable, continuing without it", map[string]interface{}{
			"addr":  cfg.Redis.Addr,
			"error": err,
		})
		_ = narratives.Close()
		return ai.NewGateway(completer, log), func() {}
	}

	log.Info("Narrative cache connected", map[string]interface{}{
		"addr": cfg.Redis.Addr,
		"ttl":  cfg.Redis.TTL.String(),
	})
	return ai.NewGateway(completer, log, ai.WithCache(narratives)), func() { _ = narratives.Close() }
}
