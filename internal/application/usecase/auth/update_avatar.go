package auth

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/khoahotran/devlink/internal/application/service"
	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
)

// UpdateAvatarUseCase replaces the registration-time gravatar with an
// uploaded image. Avatar and password are the only mutable identity fields.
type UpdateAvatarUseCase struct {
	userRepo user.Repository
	uploader service.Uploader
}

func NewUpdateAvatarUseCase(repo user.Repository, uploader service.Uploader) *UpdateAvatarUseCase {
	return &UpdateAvatarUseCase{
		userRepo: repo,
		uploader: uploader,
	}
}

type UpdateAvatarInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UpdateAvatarOutput struct {
	AvatarURL string
}

func (uc *UpdateAvatarUseCase) Execute(ctx context.Context, input UpdateAvatarInput) (*UpdateAvatarOutput, error) {
	if input.File == nil {
		return nil, apperror.NewValidationFailed(map[string]string{"file": "Avatar file is required"})
	}

	folder := fmt.Sprintf("users/%s/avatars", input.UserID.String())
	avatarURL, err := uc.uploader.Upload(ctx, input.File, folder, input.UserID.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdateAvatar(ctx, input.UserID, avatarURL); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to update avatar", err)
	}

	return &UpdateAvatarOutput{AvatarURL: avatarURL}, nil
}
