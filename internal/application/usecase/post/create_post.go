package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

type CreatePostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   event.Publisher
	logger   logger.Logger
}

func NewCreatePostUseCase(pRepo post.Repository, uRepo user.Repository, events event.Publisher, log logger.Logger) *CreatePostUseCase {
	return &CreatePostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

type CreatePostInput struct {
	CallerID uuid.UUID
	Text     string
}

type CreatePostOutput struct {
	Post *post.Post
}

func (uc *CreatePostUseCase) Execute(ctx context.Context, input CreatePostInput) (*CreatePostOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperror.NewValidationFailed(map[string]string{"text": "Text is required"})
	}

	u, err := uc.userRepo.FindByID(ctx, input.CallerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.CallerID.String())
		}
		return nil, apperror.NewInternal("failed to look up author", err)
	}

	// Author name and avatar are copied onto the post now; later profile
	// edits do not flow back into existing posts.
	newPost := &post.Post{
		ID:           uuid.New(),
		OwnerID:      u.ID,
		Text:         input.Text,
		AuthorName:   u.Name,
		AuthorAvatar: u.AvatarURL,
		Likes:        []post.Like{},
		Comments:     []post.Comment{},
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.postRepo.Save(ctx, newPost); err != nil {
		return nil, apperror.NewInternal("failed to save post", err)
	}

	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: event.PostEventTypeCreated,
			PostID:    newPost.ID,
			ActorID:   newPost.OwnerID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish post-created event", err, zap.String("post_id", newPost.ID.String()))
		}
	}()

	return &CreatePostOutput{Post: newPost}, nil
}
