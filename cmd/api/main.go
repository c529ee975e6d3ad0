package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-dogwalking-backend/config"
	_ "go-dogwalking-backend/docs" // Important for Swagger
	v1 "go-dogwalking-backend/internal/delivery/http/v1"
	"go-dogwalking-backend/internal/repository/postgres"
	"go-dogwalking-backend/internal/usecase"
	"go-dogwalking-backend/pkg/auth"
	"go-dogwalking-backend/pkg/database"
	"go-dogwalking-backend/pkg/logger"
	"go-dogwalking-backend/pkg/redis"
	"go-dogwalking-backend/pkg/validation"
)

// @title           Dog Walking Marketplace API
// @version         1.0
// @description     Backend for a dog-walking marketplace with walker matching, using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting dog walking backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting will use in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	walkerRepo := postgres.NewWalkerRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo)
	walkerUC := usecase.NewWalkerUsecase(walkerRepo, profileRepo, validate)
	matchUC := usecase.NewMatchUsecase(walkerRepo, profileRepo)

	// 7. Setup Auth Provider (JWKS)
	// Assuming Supabase URL is like https://xyz.supabase.co
	jwksURL := cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json"
	jwksProvider := auth.NewProvider(jwksURL)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		WalkerUC:     walkerUC,
		MatchUC:      matchUC,
		JWKSProvider: jwksProvider,
		Config:       cfg,
		Validate:     validate,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
