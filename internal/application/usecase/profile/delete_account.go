package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

// DeleteAccountUseCase cascades: the caller's posts, then their profile,
// then the user record. Dependents go first so a partial failure never
// leaves posts or a profile pointing at a deleted user. The steps are
// best-effort sequential, not a transaction; a failure partway is surfaced
// as an internal error and already-completed steps stay deleted.
type DeleteAccountUseCase struct {
	userRepo    user.Repository
	profileRepo profile.Repository
	postRepo    post.Repository
	cache       ListCache
	events      event.Publisher
	logger      logger.Logger
}

func NewDeleteAccountUseCase(
	userRepo user.Repository,
	profileRepo profile.Repository,
	postRepo post.Repository,
	cache ListCache,
	events event.Publisher,
	log logger.Logger,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		cache:       cache,
		events:      events,
		logger:      log,
	}
}

type DeleteAccountInput struct {
	UserID uuid.UUID
}

func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if err := uc.postRepo.DeleteByOwner(ctx, input.UserID); err != nil {
		return apperror.NewInternal("failed to delete user posts", err)
	}
	if err := uc.profileRepo.Delete(ctx, input.UserID); err != nil {
		return apperror.NewInternal("failed to delete user profile", err)
	}
	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return apperror.NewInternal("failed to delete user", err)
	}

	uc.cache.Invalidate(ctx)

	go func() {
		err := uc.events.PublishProfileEvent(context.Background(), event.ProfileEventPayload{
			EventType: event.ProfileEventTypeAccountDeleted,
			UserID:    input.UserID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish account-deleted event", err)
		}
	}()

	return nil
}
