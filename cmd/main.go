package main

import (
	"context"
	"fmt"
	"os"
	"time"

	rediscache "github.com/pathwise/pathwise-backend/internal/clients/redis"
	"github.com/pathwise/pathwise-backend/internal/data/graph"
	"github.com/pathwise/pathwise-backend/internal/data/repos"
	"github.com/pathwise/pathwise-backend/internal/db"
	pathwiseHTTP "github.com/pathwise/pathwise-backend/internal/http"
	"github.com/pathwise/pathwise-backend/internal/http/handlers"
	"github.com/pathwise/pathwise-backend/internal/observability"
	"github.com/pathwise/pathwise-backend/internal/platform/envutil"
	"github.com/pathwise/pathwise-backend/internal/platform/logger"
	"github.com/pathwise/pathwise-backend/internal/platform/neo4jdb"
	"github.com/pathwise/pathwise-backend/internal/services"
)

func main() {
	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "pathwise-backend",
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
	})
	if otelShutdown != nil {
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Neo4j (optional; path endpoints degrade without it)
	graphClient, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Warn("Neo4j init failed", "error", err)
	}
	if graphClient != nil {
		defer graphClient.Close(ctx)
		graph.EnsureResourceSchema(ctx, graphClient, log)
	}

	// Redis (optional; aggregate caching only)
	aggregateCache, err := rediscache.NewAggregateCacheFromEnv(log)
	if err != nil {
		log.Warn("Redis init failed; aggregate caching disabled", "error", err)
	}
	if aggregateCache != nil {
		defer aggregateCache.Close()
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	profileRepo := repos.NewCognitiveProfileRepo(thePG, log)
	onboardingRepo := repos.NewOnboardingResponseRepo(thePG, log)
	sessionRepo := repos.NewLearningSessionRepo(thePG, log)
	interactionRepo := repos.NewResourceInteractionRepo(thePG, log)
	masteryRepo := repos.NewConceptMasteryRepo(thePG, log)
	snapshotRepo := repos.NewBehavioralMetricsRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	behaviorService := services.NewBehaviorService(thePG, log, aggregateCache, interactionRepo, sessionRepo, masteryRepo)
	profileService := services.NewProfileService(thePG, log, aggregateCache, behaviorService, userRepo, profileRepo, onboardingRepo, snapshotRepo)
	pathService := services.NewLearningPathService(thePG, log, graphClient, profileRepo, interactionRepo)
	resourceService := services.NewResourceService(log, graphClient)

	// Handlers
	log.Info("Setting up handlers...")
	healthHandler := handlers.NewHealthHandler()
	profileHandler := handlers.NewProfileHandler(profileService, behaviorService)
	pathHandler := handlers.NewPathHandler(pathService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	interactionHandler := handlers.NewInteractionHandler(pathService)

	// Router
	server := pathwiseHTTP.NewServer(pathwiseHTTP.RouterConfig{
		Log:                log,
		ProfileHandler:     profileHandler,
		PathHandler:        pathHandler,
		ResourceHandler:    resourceHandler,
		InteractionHandler: interactionHandler,
		HealthHandler:      healthHandler,
	})

	port := envutil.String("PORT", "8080")
	log.Info("Server listening", "port", port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
