package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkcast/backend/config"
	"github.com/forkcast/backend/internal/api"
	"github.com/forkcast/backend/internal/database"
	"github.com/forkcast/backend/internal/middleware"
	"github.com/forkcast/backend/internal/reaper"
	"github.com/forkcast/backend/internal/router"
	"github.com/forkcast/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	healthDB, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer healthDB.Close()

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to open gorm connection: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The engine degrades without redis (no search cache, no rate
		// limit); it does not fail to start.
		log.Printf("Redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	}

	// Services
	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	favoritesService := service.NewFavoritesService(db)
	catalogService := service.NewCatalogService(db, redisClient)
	recommendationService := service.NewRecommendationService(db)
	searcher := service.NewSpoonacularClient(cfg, redisClient)

	orchestrator := service.NewOrchestrator(
		profileService,
		favoritesService,
		catalogService,
		recommendationService,
		[]service.Generator{
			service.NewAIPreferenceGenerator(searcher),
			service.NewTrendingGenerator(catalogService),
			service.NewSimilarUsersGenerator(favoritesService),
			service.NewSeasonalGenerator(searcher),
		},
	)
	queryService := service.NewQueryService(recommendationService)

	// Background expiry reaper
	rp, err := reaper.New(recommendationService, time.Hour)
	if err != nil {
		log.Fatalf("Failed to create reaper: %v", err)
	}
	rp.Start()

	var refreshLimiter *middleware.RateLimiter
	if redisClient != nil {
		refreshLimiter = middleware.NewRefreshRateLimiter(redisClient)
	}

	engine := router.SetupRouter(router.Deps{
		HealthDB:       healthDB,
		Validator:      authService,
		Auth:           api.NewAuthHandler(authService),
		Profile:        api.NewProfileHandler(profileService),
		Recipes:        api.NewRecipeHandler(catalogService, favoritesService),
		Recommendation: api.NewRecommendationHandler(orchestrator, queryService),
		RefreshLimiter: refreshLimiter,
	})

	srv := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: engine,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	if err := rp.Stop(); err != nil {
		log.Printf("Reaper shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
