package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/apperror"
)

type AddExperienceUseCase struct {
	profileRepo profile.Repository
}

func NewAddExperienceUseCase(repo profile.Repository) *AddExperienceUseCase {
	return &AddExperienceUseCase{profileRepo: repo}
}

type AddExperienceInput struct {
	UserID      uuid.UUID
	Title       string
	Company     string
	Location    string
	From        time.Time
	To          *time.Time
	Current     bool
	Description string
}

type ProfileOutput struct {
	Profile *profile.Profile
}

// Execute assigns a fresh entry id, prepends the entry (most-recent-first)
// and persists the whole profile. Required fields are checked by the request
// validation gate before this runs.
func (uc *AddExperienceUseCase) Execute(ctx context.Context, input AddExperienceInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "AddExperience")
	defer span.End()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("There is no profile for this user", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to read profile for experience add", err)
	}

	p.AddExperience(profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Replace(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to persist experience add", err)
	}
	return &ProfileOutput{Profile: p}, nil
}

type RemoveExperienceUseCase struct {
	profileRepo profile.Repository
}

func NewRemoveExperienceUseCase(repo profile.Repository) *RemoveExperienceUseCase {
	return &RemoveExperienceUseCase{profileRepo: repo}
}

type RemoveExperienceInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// Execute removes exactly one entry by id. An absent id leaves the list
// untouched and reports a client error.
func (uc *RemoveExperienceUseCase) Execute(ctx context.Context, input RemoveExperienceInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "RemoveExperience")
	defer span.End()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("There is no profile for this user", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to read profile for experience remove", err)
	}

	if err := p.RemoveExperience(input.EntryID); err != nil {
		return nil, apperror.NewInvalidInput("There is no experience with this id", err)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Replace(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to persist experience remove", err)
	}
	return &ProfileOutput{Profile: p}, nil
}
