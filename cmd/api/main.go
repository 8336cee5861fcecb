package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-benefit-recommender/config"
	_ "go-benefit-recommender/docs" // Important for Swagger
	v1 "go-benefit-recommender/internal/delivery/http/v1"
	"go-benefit-recommender/internal/domain"
	"go-benefit-recommender/internal/recommendation"
	"go-benefit-recommender/internal/repository/cache"
	"go-benefit-recommender/internal/repository/postgres"
	"go-benefit-recommender/internal/usecase"
	"go-benefit-recommender/pkg/database"
	"go-benefit-recommender/pkg/logger"
	"go-benefit-recommender/pkg/redis"
)

// @title           Benefit Recommender API
// @version         1.0
// @description     Ranks employee benefits for job offers and stores the selections.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting benefit recommender", "port", cfg.Port)

	// 3. Setup Engine
	weights, err := recommendation.LoadWeights(cfg.WeightsFile)
	if err != nil {
		logger.Log.Error("Invalid benefit weights", "file", cfg.WeightsFile, "error", err)
		os.Exit(1)
	}
	engine, err := recommendation.NewEngine(
		recommendation.WithWeights(weights),
		recommendation.WithMaxTextLength(cfg.MaxTextLength),
	)
	if err != nil {
		logger.Log.Error("Failed to build recommendation engine", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Recommendation engine ready", "weights", engine.Fingerprint(), "max_text_length", engine.MaxTextLength())

	// 4. Setup Database (optional)
	var (
		offerRepo   domain.OfferRepository
		benefitRepo domain.BenefitRepository
		dbPing      usecase.Pinger
	)
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		offerRepo = postgres.NewOfferRepository(dbPool)
		benefitRepo = postgres.NewBenefitRepository(dbPool)
		dbPing = dbPool.Ping
	}

	// 5. Setup Redis (optional)
	var redisPing usecase.Pinger
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, continuing without cache", "error", err)
		} else {
			defer redis.Close()
			redisPing = redis.HealthCheck
		}
	}
	suggestionCache := cache.NewSuggestionCache(redis.Client(), cfg.SuggestionCacheTTL)

	// 6. Setup UseCases
	suggestionUC := usecase.NewSuggestionUsecase(engine, offerRepo, benefitRepo, suggestionCache, usecase.SuggestionLimits{
		DefaultLimit:         cfg.DefaultMaxSuggestions,
		MaxLimit:             cfg.MaxSuggestionsLimit,
		MaxDescriptionLength: cfg.MaxDescriptionLength,
	})
	healthUC := usecase.NewHealthUsecase(engine, map[string]usecase.Pinger{
		"database": dbPing,
		"redis":    redisPing,
	})

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SuggestionUC: suggestionUC,
		HealthUC:     healthUC,
		Redis:        redis.Client(),
		Config:       cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	logger.Log.Info("Server exiting")
}
