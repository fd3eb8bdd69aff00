package github

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/lamng/dev-network/internal/application/service"
	"github.com/lamng/dev-network/pkg/apperror"
	"github.com/lamng/dev-network/pkg/logger"
)

var tracer = otel.Tracer("github_usecase")

type ListReposUseCase struct {
	githubSvc service.GithubService
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    logger.Logger
}

// NewListReposUseCase wires the outbound GitHub service with an optional
// redis cache; cache may be nil.
func NewListReposUseCase(svc service.GithubService, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *ListReposUseCase {
	return &ListReposUseCase{
		githubSvc: svc,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    log,
	}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Payload json.RawMessage
}

const cacheKeyPrefix = "github:repos:"

// Execute relays the upstream repository list verbatim. Every upstream
// failure collapses into the one not-found error; the real cause is logged
// here and never reaches the caller.
func (uc *ListReposUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	ctx, span := tracer.Start(ctx, "ListGithubRepos")
	defer span.End()
	span.SetAttributes(attribute.String("github.username", input.Username))

	cacheKey := cacheKeyPrefix + input.Username
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			return &ListReposOutput{Payload: cached}, nil
		}
	}

	payload, err := uc.githubSvc.ListUserRepos(ctx, input.Username)
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("github repo listing failed", zap.String("username", input.Username), zap.Error(err))
		return nil, apperror.NewNotFound("No Github profile found", "github repo listing for '"+input.Username+"' failed")
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, []byte(payload), uc.cacheTTL).Err(); err != nil {
			uc.logger.Warn("github repo cache write failed", zap.String("username", input.Username), zap.Error(err))
		}
	}

	return &ListReposOutput{Payload: payload}, nil
}
