package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
)

type CurrentUserUseCase struct {
	userRepo user.Repository
}

func NewCurrentUserUseCase(repo user.Repository) *CurrentUserUseCase {
	return &CurrentUserUseCase{userRepo: repo}
}

type CurrentUserInput struct {
	UserID uuid.UUID
}

type CurrentUserOutput struct {
	User *user.User
}

func (uc *CurrentUserUseCase) Execute(ctx context.Context, input CurrentUserInput) (*CurrentUserOutput, error) {
	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("User", input.UserID.String())
		}
		return nil, apperror.NewInternal("failed to look up user", err)
	}
	return &CurrentUserOutput{User: u}, nil
}
