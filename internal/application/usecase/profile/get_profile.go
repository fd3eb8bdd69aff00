package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/apperror"
)

var tracer = otel.Tracer("profile_usecase")

type GetProfileUseCase struct {
	profileRepo profile.Repository
}

func NewGetProfileUseCase(repo profile.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteOwn looks up the caller's own profile. An absent profile is a client
// error, not a server fault.
func (uc *GetProfileUseCase) ExecuteOwn(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetOwnProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", input.UserID.String()))

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("There is no profile for this user", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to query own profile", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

// ExecuteByUserID looks up any user's profile. Both a malformed and a
// well-formed-but-absent id yield the same client error; the handler maps
// unparseable ids before this is reached.
func (uc *GetProfileUseCase) ExecuteByUserID(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "GetProfileByUserID")
	defer span.End()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("Profile not found", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to query profile by user id", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}
