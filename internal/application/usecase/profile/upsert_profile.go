package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lamng/dev-network/adapters/event"
	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/apperror"
	"github.com/lamng/dev-network/pkg/logger"
)

type UpsertProfileUseCase struct {
	profileRepo profile.Repository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewUpsertProfileUseCase(repo profile.Repository, kClient *event.KafkaProducerClient, log logger.Logger) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{
		profileRepo: repo,
		kafkaClient: kClient,
		logger:      log,
	}
}

type UpsertProfileInput struct {
	UserID uuid.UUID
	Patch  profile.Patch
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

// Execute creates the caller's profile from the supplied field subset, or
// merges the patch into the existing one. Absent fields are never cleared.
// The write itself is a single atomic upsert keyed on the unique user id, so
// concurrent calls for the same user cannot produce two profiles.
func (uc *UpsertProfileUseCase) Execute(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "UpsertProfile")
	defer span.End()

	now := time.Now().UTC()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			span.RecordError(err)
			return nil, apperror.NewInternal("failed to read profile before upsert", err)
		}
		p = &profile.Profile{
			UserID:     input.UserID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
			CreatedAt:  now,
		}
	}

	p.Apply(input.Patch)
	p.UpdatedAt = now

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}

	// Re-read so the response carries the stored record with the owner's
	// name and avatar denormalized.
	if stored, err := uc.profileRepo.FindByUserID(ctx, input.UserID); err == nil {
		p = stored
	}

	if uc.kafkaClient != nil {
		go func() {
			err := uc.kafkaClient.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
				EventType:  event.ProfileEventTypeUpserted,
				UserID:     input.UserID,
				OccurredAt: now,
			})
			if err != nil {
				uc.logger.Warn("publish profile event failed", zap.String("user_id", input.UserID.String()), zap.Error(err))
			}
		}()
	}

	return &UpsertProfileOutput{Profile: p}, nil
}
