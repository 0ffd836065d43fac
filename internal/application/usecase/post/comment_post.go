package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/ownership"
	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/collection"
	"github.com/khoahotran/devlink/pkg/logger"
)

type CommentPostUseCase struct {
	postRepo post.Repository
	userRepo user.Repository
	events   event.Publisher
	logger   logger.Logger
}

func NewCommentPostUseCase(pRepo post.Repository, uRepo user.Repository, events event.Publisher, log logger.Logger) *CommentPostUseCase {
	return &CommentPostUseCase{
		postRepo: pRepo,
		userRepo: uRepo,
		events:   events,
		logger:   log,
	}
}

type AddCommentInput struct {
	PostID   uuid.UUID
	CallerID uuid.UUID
	Text     string
}

type AddCommentOutput struct {
	Comments []post.Comment
}

func (uc *CommentPostUseCase) ExecuteAddComment(ctx context.Context, input AddCommentInput) (*AddCommentOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, apperror.NewValidationFailed(map[string]string{"text": "Text is required"})
	}

	u, err := uc.userRepo.FindByID(ctx, input.CallerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.CallerID.String())
		}
		return nil, apperror.NewInternal("failed to look up commenter", err)
	}

	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	comment := post.Comment{
		ID:           uuid.New(),
		UserID:       u.ID,
		Text:         input.Text,
		AuthorName:   u.Name,
		AuthorAvatar: u.AvatarURL,
		CreatedAt:    time.Now().UTC(),
	}
	p.Comments = collection.InsertFront(p.Comments, comment)

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to save comment", err)
	}
	uc.publish(event.PostEventTypeCommented, input.PostID, input.CallerID)

	return &AddCommentOutput{Comments: p.Comments}, nil
}

type DeleteCommentInput struct {
	PostID    uuid.UUID
	CommentID uuid.UUID
	CallerID  uuid.UUID
}

type DeleteCommentOutput struct {
	Comments []post.Comment
}

// ExecuteDeleteComment checks ownership against the comment's author, not
/// the post's: a commenter may remove their comment from anyone's post, and
// the post's owner cannot remove other people's comments.
func (uc *CommentPostUseCase) ExecuteDeleteComment(ctx context.Context, input DeleteCommentInput) (*DeleteCommentOutput, error) {
	p, err := uc.loadPost(ctx, input.PostID)
	if err != nil {
		return nil, err
	}

	comment, ok := collection.Find(p.Comments, func(c post.Comment) bool {
		return c.ID == input.CommentID
	})
	if !ok {
		return nil, apperror.NewNotFound("Comment", input.CommentID.String())
	}

	if err := ownership.Check(comment.UserID, input.CallerID, "comment"); err != nil {
		return nil, err
	}

	p.Comments, _ = collection.RemoveFirst(p.Comments, func(c post.Comment) bool {
		return c.ID == input.CommentID
	})

	if err := uc.postRepo.Update(ctx, p); err != nil {
		return nil, apperror.NewInternal("failed to delete comment", err)
	}

	return &DeleteCommentOutput{Comments: p.Comments}, nil
}

func (uc *CommentPostUseCase) loadPost(ctx context.Context, postID uuid.UUID) (*post.Post, error) {
	p, err := uc.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, apperror.NewNotFound("Post", postID.String())
		}
		return nil, apperror.NewInternal("failed to load post", err)
	}
	return p, nil
}

func (uc *CommentPostUseCase) publish(eventType string, postID, actorID uuid.UUID) {
	go func() {
		err := uc.events.PublishPostEvent(context.Background(), event.PostEventPayload{
			EventType: eventType,
			PostID:    postID,
			ActorID:   actorID,
		})
		if err != nil {
			uc.logger.Error("Failed to publish comment event", err, zap.String("post_id", postID.String()))
		}
	}()
}
