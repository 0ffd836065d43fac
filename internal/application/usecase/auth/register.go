package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/auth"
	"github.com/khoahotran/devlink/pkg/gravatar"
	"github.com/khoahotran/devlink/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	AccessToken string
	UserID      uuid.UUID
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "Name is required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "Email is required"
	}
	if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationFailed(fields)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		AvatarURL:    gravatar.URL(input.Email),
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, apperror.NewConflict("User", "a user with this email already exists")
		}
		return nil, apperror.NewInternal("failed to save user", err)
	}

	token, err := uc.jwtSvc.GenerateToken(newUser.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", newUser.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &RegisterOutput{AccessToken: token, UserID: newUser.ID}, nil
}
