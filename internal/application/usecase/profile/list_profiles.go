package profile

import (
	"context"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/apperror"
)

type ListProfilesUseCase struct {
	profileRepo profile.Repository
}

func NewListProfilesUseCase(repo profile.Repository) *ListProfilesUseCase {
	return &ListProfilesUseCase{profileRepo: repo}
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ListProfilesUseCase) Execute(ctx context.Context) (*ListProfilesOutput, error) {
	ctx, span := tracer.Start(ctx, "ListProfiles")
	defer span.End()

	profiles, err := uc.profileRepo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}
