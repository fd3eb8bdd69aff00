package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lamng/dev-network/adapters/event"
	"github.com/lamng/dev-network/internal/domain/post"
	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/internal/domain/user"
	"github.com/lamng/dev-network/pkg/apperror"
	"github.com/lamng/dev-network/pkg/logger"
)

type DeleteAccountUseCase struct {
	profileRepo profile.Repository
	postRepo    post.Repository
	userRepo    user.Repository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewDeleteAccountUseCase(pRepo profile.Repository, postRepo post.Repository, uRepo user.Repository, kClient *event.KafkaProducerClient, log logger.Logger) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		profileRepo: pRepo,
		postRepo:    postRepo,
		userRepo:    uRepo,
		kafkaClient: kClient,
		logger:      log,
	}
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

// Execute removes the user's posts, then profile, then the user row itself.
// Posts and profile must be gone before the identity they hang off is
// removed. There is no compensating rollback: a failure partway through
// leaves the later steps undone.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	ctx, span := tracer.Start(ctx, "DeleteAccount")
	defer span.End()

	if err := uc.postRepo.DeleteByOwner(ctx, input.UserID); err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to delete posts for account removal", err)
	}

	if err := uc.profileRepo.DeleteByUserID(ctx, input.UserID); err != nil && !errors.Is(err, profile.ErrProfileNotFound) {
		span.RecordError(err)
		return apperror.NewInternal("failed to delete profile for account removal", err)
	}

	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		span.RecordError(err)
		return apperror.NewInternal("failed to delete user for account removal", err)
	}

	if uc.kafkaClient != nil {
		go func() {
			err := uc.kafkaClient.PublishAccountEvent(context.Background(), event.ProfileEventPayload{
				EventType:  event.AccountEventTypeDeleted,
				UserID:     input.UserID,
				OccurredAt: time.Now().UTC(),
			})
			if err != nil {
				uc.logger.Warn("publish account event failed", zap.String("user_id", input.UserID.String()), zap.Error(err))
			}
		}()
	}

	return nil
}
