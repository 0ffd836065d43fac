package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/collection"
)

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

type AddEducationOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteAddEducation(ctx context.Context, input AddEducationInput) (*AddEducationOutput, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.School) == "" {
		fields["school"] = "School is required"
	}
	if strings.TrimSpace(input.Degree) == "" {
		fields["degree"] = "Degree is required"
	}
	if strings.TrimSpace(input.FieldOfStudy) == "" {
		fields["field_of_study"] = "Field of Study is required"
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

	entry := profile.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         input.From,
		To:           input.To,
		Current:      input.Current,
		Description:  input.Description,
	}
	if entry.Current {
		entry.To = nil
	}
	p.Education = collection.InsertFront(p.Education, entry)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save education", err)
	}
	uc.cache.Invalidate(ctx)

	return &AddEducationOutput{Profile: p}, nil
}

type DeleteEducationInput struct {
	UserID      uuid.UUID
	EducationID uuid.UUID
}

type DeleteEducationOutput struct {
	Profile *profile.Profile
}

// An unknown education id is a no-op, mirroring experience deletion.
func (uc *ProfileUseCase) ExecuteDeleteEducation(ctx context.Context, input DeleteEducationInput) (*DeleteEducationOutput, error) {
	p, err := uc.loadOwnProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	p.Education, _ = collection.RemoveFirst(p.Education, func(e profile.Education) bool {
		return e.ID == input.EducationID
	})
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to delete education", err)
	}
	uc.cache.Invalidate(ctx)

	return &DeleteEducationOutput{Profile: p}, nil
}
