package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/collection"
)

// Experience entries are reached only through the caller's own profile
// lookup, so cross-user injection is structurally impossible: no explicit
// ownership check is needed here.

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

type AddExperienceOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteAddExperience(ctx context.Context, input AddExperienceInput) (*AddExperienceOutput, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "Title is required"
	}
	if strings.TrimSpace(input.Company) == "" {
		fields["company"] = "Company is required"
	}
	if input.From.IsZero() {
		fields["from"] = "From date is required"
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationFailed(fields)
	}

	p, err := uc.loadOwnProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	entry := profile.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        input.From,
		To:          input.To,
		Current:     input.Current,
		Description: input.Description,
	}
	if entry.Current {
		entry.To = nil
	}
	p.Experience = collection.InsertFront(p.Experience, entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save experience", err)
	}
	uc.cache.Invalidate(ctx)

	return &AddExperienceOutput{Profile: p}, nil
}

type DeleteExperienceInput struct {
	UserID       uuid.UUID
	ExperienceID uuid.UUID
}

type DeleteExperienceOutput struct {
	Profile *profile.Profile
}

// ExecuteDeleteExperience removes the entry with the given id from the
// caller's profile. An unknown id leaves the profile unchanged and still
// succeeds.
func (uc *ProfileUseCase) ExecuteDeleteExperience(ctx context.Context, input DeleteExperienceInput) (*DeleteExperienceOutput, error) {
	p, err := uc.loadOwnProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.Experience, _ = collection.RemoveFirst(p.Experience, func(e profile.Experience) bool {
		return e.ID == input.ExperienceID
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to delete experience", err)
	}
	uc.cache.Invalidate(ctx)

	return &DeleteExperienceOutput{Profile: p}, nil
}

func (uc *ProfileUseCase) loadOwnProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("Profile", userID.String())
		}
		return nil, apperror.NewInternal("failed to load profile", err)
	}
	return p, nil
}
