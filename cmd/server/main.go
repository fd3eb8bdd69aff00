package main

import (
	"context"
	"log"

	"github.com/lamng/dev-network/adapters/event"
	"github.com/lamng/dev-network/adapters/github"
	httpAdapter "github.com/lamng/dev-network/adapters/http"
	"github.com/lamng/dev-network/adapters/persistence"
	githubUC "github.com/lamng/dev-network/internal/application/usecase/github"
	profileUC "github.com/lamng/dev-network/internal/application/usecase/profile"
	"github.com/lamng/dev-network/internal/config"
	"github.com/lamng/dev-network/pkg/auth"
	"github.com/lamng/dev-network/pkg/logger"
	"github.com/lamng/dev-network/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	if cfg.Tracing.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "dev-network-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	postRepo := persistence.NewPostgresPostRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubSvc, err := github.NewGithubAdapter(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init GitHub adapter", err)
	}

	// Use cases
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo)
	listProfilesUseCase := profileUC.NewListProfilesUseCase(profileRepo)
	upsertProfileUseCase := profileUC.NewUpsertProfileUseCase(profileRepo, kafkaClient, appLogger)
	addExperienceUseCase := profileUC.NewAddExperienceUseCase(profileRepo)
	removeExperienceUseCase := profileUC.NewRemoveExperienceUseCase(profileRepo)
	addEducationUseCase := profileUC.NewAddEducationUseCase(profileRepo)
	removeEducationUseCase := profileUC.NewRemoveEducationUseCase(profileRepo)
	deleteAccountUseCase := profileUC.NewDeleteAccountUseCase(profileRepo, postRepo, userRepo, kafkaClient, appLogger)
	listReposUseCase := githubUC.NewListReposUseCase(githubSvc, redisClient, cfg.Github.CacheTTL, appLogger)

	// HTTP
	profileHandler := httpAdapter.NewProfileHandler(
		getProfileUseCase,
		listProfilesUseCase,
		upsertProfileUseCase,
		addExperienceUseCase,
		removeExperienceUseCase,
		addEducationUseCase,
		removeEducationUseCase,
		deleteAccountUseCase,
	)
	githubHandler := httpAdapter.NewGithubHandler(listReposUseCase)

	router := httpAdapter.SetupRouter(
		profileHandler,
		githubHandler,
		httpAdapter.AuthMiddleware(jwtSvc),
		httpAdapter.ErrorMiddleware(appLogger),
	)

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
