package post

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/collection"
	"github.com/khoahotran/devlink/pkg/logger"
)

// LikePostUseCase covers both directions of the like toggle. A repeated
// like or an unlike without a prior like trips the idempotency guard and
// comes back as a conflict the caller must reconcile, never as a silent
// no-op or a duplicate.
type LikePostUseCase struct {
	postRepo post.Repository
	events   event.Publisher
	logger   logger.Logger
}

func NewLikePostUseCase(pRepo post.Repository, events event.Publisher, log logger.Logger) *LikePostUseCase {
	return &LikePostUseCase{
		postRepo: pRepo,
		events:   events,
		logger:   log,
	}
}

type LikePostInput struct {
	PostID   uuid.UUID
	CallerID uuid.UUID
}

type LikePostOutput struct {
	Likes []post.Like
}

func (uc *LikePostUseCase) ExecuteLike(ctx context.Context, input LikePostInput) (*LikePostOutput, error) {
	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	likedByCaller := func(l post.Like) bool { return l.UserID == input.CallerID }
	p.Likes, err = collection.Add(p.Likes, likedByCaller, post.Like{UserID: input.CallerID})
	if err != nil {
		if errors.Is(err, collection.ErrDuplicate) {
			return nil, apperror.NewConflict("Like", "post already liked")
		}
		return nil, apperror.NewInternal("failed to add like", err)
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save like", err)
	}
	uc.publish(event.PostEventTypeLiked, input)

	return &LikePostOutput{Likes: p.Likes}, nil
}

func (uc *LikePostUseCase) ExecuteUnlike(ctx context.Context, input LikePostInput) (*LikePostOutput, error) {
	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	likedByCaller := func(l post.Like) bool { return l.UserID == input.CallerID }
	p.Likes, err = collection.Remove(p.Likes, likedByCaller)
	if err != nil {
		if errors.Is(err, collection.ErrAbsent) {
			return nil, apperror.NewConflict("Like", "post has not yet been liked")
		}
		return nil, apperror.NewInternal("failed to remove like", err)
	}

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save unlike", err)
	}
	uc.publish(event.PostEventTypeUnliked, input)

	return &LikePostOutput{Likes: p.Likes}, nil
}

func (uc *LikePostUseCase) loadPost(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", postID.String())
		}
		return nil, apperror.NewInternal("failed to load post", err)
	}
	return p, nil
}

func (uc *LikePostUseCase) publish(eventType string, input LikePostInput) {
	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: eventType,
			PostID:    input.PostID,
			ActorID:   input.CallerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish like event", err, zap.String("post_id", input.PostID.String()), zap.String("event_type", eventType))
		}
	}()
}
