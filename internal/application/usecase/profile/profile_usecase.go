package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

// ListCache fronts the public profile listing; mutations invalidate it.
type ListCache interface {
	Get(ctx context.Context) ([]*profile.Profile, bool)
	Set(ctx context.Context, profiles []*profile.Profile)
	Invalidate(ctx context.Context)
}

type ProfileUseCase struct {
	profileRepo profile.Repository
	cache       ListCache
	events      event.Publisher
	logger      logger.Logger
}

func NewProfileUseCase(repo profile.Repository, cache ListCache, events event.Publisher, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewNotFound("Profile", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to get profile", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesInput struct {
	Limit  int
	Offset int
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteListProfiles(ctx context.Context, input ListProfilesInput) (*ListProfilesOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}

	// The cache only holds the default first page.
	cacheable := input.Offset == 0 && input.Limit == 50
	if cacheable {
		if profiles, ok := uc.cache.Get(ctx); ok {
			return &ListProfilesOutput{Profiles: profiles}, nil
		}
	}

	profiles, err := uc.profileRepo.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	if cacheable {
		uc.cache.Set(ctx, profiles)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}

type UpsertProfileInput struct {
	UserID         uuid.UUID
	Status         string
	Company        string
	Website        string
	Location       string
	Bio            string
	GithubUsername string
	// Skills arrives as the raw comma-separated string the client submits.
	Skills    string
	Youtube   string
	Twitter   string
	Facebook  string
	LinkedIn  string
	Instagram string
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpsertProfile creates the caller's profile on first submission and
// merges on every one after: only supplied fields replace existing values,
// absent fields keep what was there. Status and skills are mandatory only
// when there is no profile yet.
func (uc *ProfileUseCase) ExecuteUpsertProfile(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, profile.ErrProfileNotFound) {
			return nil, apperror.NewInternal("failed to load profile", err)
		}

		fields := map[string]string{}
		if strings.TrimSpace(input.Status) == "" {
			fields["status"] = "Status is required"
		}
		if strings.TrimSpace(input.Skills) == "" {
			fields["skills"] = "Skills is required"
		}
		if len(fields) > 0 {
			return nil, apperror.NewValidationFailed(fields)
		}

		p = &profile.Profile{
			UserID:     input.UserID,
			Skills:     []string{},
			Experience: []profile.Experience{},
			Education:  []profile.Education{},
		}
	}

	applyProfileFields(p, input)
	p.UpdatedAt = time.Now().UTC()

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to upsert profile", err)
	}
	uc.cache.Invalidate(ctx)
	uc.publishProfileEvent(input.UserID, event.ProfileEventTypeUpdated)

	return &UpsertProfileOutput{Profile: p}, nil
}

func applyProfileFields(p *profile.Profile, input UpsertProfileInput) {
	if input.Status != "" {
		p.Status = input.Status
	}
	if input.Company != "" {
		p.Company = input.Company
	}
	if input.Website != "" {
		p.Website = input.Website
	}
	if input.Location != "" {
		p.Location = input.Location
	}
	if input.Bio != "" {
		p.Bio = input.Bio
	}
	if input.GithubUsername != "" {
		p.GithubUsername = input.GithubUsername
	}
	if input.Skills != "" {
		p.Skills = splitSkills(input.Skills)
	}
	if input.Youtube != "" {
		p.Social.Youtube = input.Youtube
	}
	if input.Twitter != "" {
		p.Social.Twitter = input.Twitter
	}
	if input.Facebook != "" {
		p.Social.Facebook = input.Facebook
	}
	if input.LinkedIn != "" {
		p.Social.LinkedIn = input.LinkedIn
	}
	if input.Instagram != "" {
		p.Social.Instagram = input.Instagram
	}
}

func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func (uc *ProfileUseCase) publishProfileEvent(userID uuid.UUID, eventType string) {
	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: eventType,
			UserID:    userID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish profile event", err, zap.String("user_id", userID.String()), zap.String("event_type", eventType))
		}
	}()
}
