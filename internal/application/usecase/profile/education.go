package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lamng/dev-network/internal/domain/profile"
	"github.com/lamng/dev-network/pkg/apperror"
)

type AddEducationUseCase struct {
	profileRepo profile.Repository
}

func NewAddEducationUseCase(repo profile.Repository) *AddEducationUseCase {
	return &AddEducationUseCase{profileRepo: repo}
}

type AddEducationInput struct {
	UserID       uuid.UUID
	School       string
	Degree       string
	FieldOfStudy string
	From         time.Time
	To           *time.Time
	Current      bool
	Description  string
}

func (uc *AddEducationUseCase) Execute(ctx context.Context, input AddEducationInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "AddEducation")
	defer span.End()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("There is no profile for this user", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to read profile for education add", err)
	}

	p.AddEducation(profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Replace(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to persist education add", err)
	}
	return &ProfileOutput{Profile: p}, nil
}

type RemoveEducationUseCase struct {
	profileRepo profile.Repository
}

func NewRemoveEducationUseCase(repo profile.Repository) *RemoveEducationUseCase {
	return &RemoveEducationUseCase{profileRepo: repo}
}

type RemoveEducationInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

func (uc *RemoveEducationUseCase) Execute(ctx context.Context, input RemoveEducationInput) (*ProfileOutput, error) {
	ctx, span := tracer.Start(ctx, "RemoveEducation")
	defer span.End()

	p, err := uc.profileRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInvalidInput("There is no profile for this user", err)
		}
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to read profile for education remove", err)
	}

	if err := p.RemoveEducation(input.EntryID); err != nil {
		return nil, apperror.NewInvalidInput("There is no education with this id", err)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Replace(ctx, p); err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to persist education remove", err)
	}
	return &ProfileOutput{Profile: p}, nil
}
