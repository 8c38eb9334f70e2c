package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assistantapp "github.com/chefcode/backend/internal/application/assistant"
	chatapp "github.com/chefcode/backend/internal/application/chat"
	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	invoiceapp "github.com/chefcode/backend/internal/application/invoice"
	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	syncapp "github.com/chefcode/backend/internal/application/sync"
	taskapp "github.com/chefcode/backend/internal/application/task"
	"github.com/chefcode/backend/internal/infrastructure/ai"
	"github.com/chefcode/backend/internal/infrastructure/config"
	"github.com/chefcode/backend/internal/infrastructure/logger"
	"github.com/chefcode/backend/internal/infrastructure/persistence"
	"github.com/chefcode/backend/internal/interfaces/http/handler"
	"github.com/chefcode/backend/internal/interfaces/http/middleware"
	"github.com/chefcode/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not up yet.
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories.
	inventoryRepo := persistence.NewGormInventoryRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	syncScope := persistence.NewGormSyncTransactionScope(db.DB)

	// Model client; every AI-backed feature degrades gracefully when the
	// key is missing.
	aiClient := ai.NewClient(&cfg.AI, log)
	if !aiClient.Available() {
		log.Warn("AI integration not configured, chat, assistant and OCR endpoints will report unavailable")
	}
	if cfg.Auth.APIKey == "" {
		log.Warn("API key authentication is disabled, set auth.api_key before exposing this server")
	}

	// Application services.
	inventoryService := inventoryapp.NewService(inventoryRepo, log)
	recipeService := recipeapp.NewService(recipeRepo, log)
	taskService := taskapp.NewService(taskRepo, log)
	reconciler := syncapp.NewReconciler(syncScope, log)
	chatService := chatapp.NewService(aiClient, inventoryService, log)
	assistantService := assistantapp.NewService(aiClient, inventoryService, recipeService, log)
	invoiceValidator := invoiceapp.NewValidator(log)

	// HTTP engine.
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		middleware.CORSWithConfig(corsCfg),
		middleware.Secure(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	auth := middleware.APIKeyAuth(cfg.Auth.APIKey)

	handler.NewSystemHandler(cfg.App.Name, version).RegisterRoutes(engine)
	router.NewRouter(engine).
		Register(handler.NewInventoryHandler(inventoryService, auth)).
		Register(handler.NewRecipeHandler(recipeService, auth)).
		Register(handler.NewTaskHandler(taskService, auth)).
		Register(handler.NewDataHandler(inventoryService, recipeService, taskService)).
		Register(handler.NewActionsHandler(inventoryService, recipeService, taskService, auth)).
		Register(handler.NewSyncHandler(reconciler, auth)).
		Register(handler.NewChatHandler(chatService, aiClient, auth)).
		Register(handler.NewAssistantHandler(assistantService, auth)).
		Register(handler.NewOCRHandler(aiClient, invoiceValidator, aiClient, auth)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
