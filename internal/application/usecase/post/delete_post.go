package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/ownership"
	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

type DeletePostUseCase struct {
	postRepo post.Repository
	events   event.Publisher
	logger   logger.Logger
}

func NewDeletePostUseCase(pRepo post.Repository, events event.Publisher, log logger.Logger) *DeletePostUseCase {
	return &DeletePostUseCase{
		postRepo: pRepo,
		events:   events,
		logger:   log,
	}
}

type DeletePostInput struct {
	PostID   uuid.UUID
	CallerID uuid.UUID
}

func (uc *DeletePostUseCase) Execute(ctx context.Context, input DeletePostInput) error {
	p, err := uc.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return apperror.NewNotFound("Post", input.PostID.String())
		}
		return apperror.NewInternal("failed to load post", err)
	}

	if err := ownership.Check(p.OwnerID, input.CallerID, "post"); err != nil {
		return err
	}

	if err := uc.postRepo.Delete(ctx, input.PostID); err != nil {
		return apperror.NewInternal("failed to delete post", err)
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeDeleted,
			PostID:    input.PostID,
			ActorID:   input.CallerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish post-deleted event", err, zap.String("post_id", input.PostID.String()))
		}
	}()

	return nil
}
