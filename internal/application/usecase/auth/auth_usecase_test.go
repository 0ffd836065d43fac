package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/auth"
	"github.com/khoahotran/devlink/pkg/logger"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarURL string) error {
	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func newTestJWT() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour)
}

func Test_Register_CreatesUserWithGravatarAndToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUseCase(repo, newTestJWT(), logger.NewNop())

	output, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)

	saved, err := repo.FindByID(context.Background(), output.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", saved.Email)
	assert.True(t, strings.HasPrefix(saved.AvatarURL, "https://gravatar.com/avatar/"))
	assert.NotEqual(t, "secret1", saved.PasswordHash)
}

func Test_Register_ValidatesInput(t *testing.T) {
	uc := NewRegisterUseCase(newFakeUserRepo(), newTestJWT(), logger.NewNop())

	_, err := uc.Execute(context.Background(), RegisterInput{
		Name:     " ",
		Email:    "",
		Password: "short",
	})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "password")
}

func Test_Register_DuplicateEmailConflicts(t *testing.T) {
	uc := NewRegisterUseCase(newFakeUserRepo(), newTestJWT(), logger.NewNop())
	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"}

	_, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)

	input.Name = "Other Alice"
	_, err = uc.Execute(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func Test_Login_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	jwtSvc := newTestJWT()
	registerUC := NewRegisterUseCase(repo, jwtSvc, logger.NewNop())
	loginUC := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

	registered, err := registerUC.Execute(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	output, err := loginUC.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(output.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, claims.UserID)
}

func Test_Login_SameAnswerForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	jwtSvc := newTestJWT()
	registerUC := NewRegisterUseCase(repo, jwtSvc, logger.NewNop())
	loginUC := NewLoginUseCase(repo, jwtSvc, logger.NewNop())

	_, err := registerUC.Execute(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, errUnknown := loginUC.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, errWrongPw := loginUC.Execute(ctx, LoginInput{Email: "alice@example.com", Password: "wrong"})

	require.ErrorIs(t, errUnknown, apperror.ErrUnauthorized)
	require.ErrorIs(t, errWrongPw, apperror.ErrUnauthorized)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
}

func Test_CurrentUser_ReturnsStoredUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	registerUC := NewRegisterUseCase(repo, newTestJWT(), logger.NewNop())
	currentUC := NewCurrentUserUseCase(repo)

	registered, err := registerUC.Execute(ctx, RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	output, err := currentUC.Execute(ctx, CurrentUserInput{UserID: registered.UserID})
	require.NoError(t, err)
	assert.Equal(t, "Alice", output.User.Name)

	_, err = currentUC.Execute(ctx, CurrentUserInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
