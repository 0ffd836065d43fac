package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/internal/domain/user"
	"github.com/khoahotran/devlink/pkg/logger"
)

type RepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	postRepo    post.Repository
	profileRepo profile.Repository
	userRepo    user.Repository
	testOwner   *user.User
}

func (s *RepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.postRepo = NewPostgresPostRepo(s.dbPool)
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, logger.NewNop())
	s.userRepo = NewPostgresUserRepo(s.dbPool)

	s.testOwner = &user.User{
		ID:           uuid.New(),
		Name:         "Test Owner",
		Email:        "testowner@example.com",
		PasswordHash: "hashedpassword",
		AvatarURL:    "https://gravatar.com/avatar/test",
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Save(ctx, s.testOwner); err != nil {
		s.T().Fatalf("Failed to seed owner: %s", err)
	}
}

func (s *RepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(RepoIntegrationTestSuite))
}

func (s *RepoIntegrationTestSuite) Test_User_SaveAndFind() {
	ctx := context.Background()

	found, err := s.userRepo.FindByEmail(ctx, s.testOwner.Email)
	s.NoError(err)
	s.Equal(s.testOwner.ID, found.ID)
	s.Equal(s.testOwner.Name, found.Name)

	dup := &user.User{
		ID:           uuid.New(),
		Name:         "Duplicate",
		Email:        s.testOwner.Email,
		PasswordHash: "otherhash",
		CreatedAt:    time.Now().UTC(),
	}
	err = s.userRepo.Save(ctx, dup)
	s.ErrorIs(err, user.ErrEmailTaken)
}

func (s *RepoIntegrationTestSuite) Test_Post_AggregateRoundTrip() {
	ctx := context.Background()

	newPost := &post.Post{
		ID:           uuid.New(),
		OwnerID:      s.testOwner.ID,
		Text:         "hello from integration",
		AuthorName:   s.testOwner.Name,
		AuthorAvatar: s.testOwner.AvatarURL,
		Likes:        []post.Like{},
		Comments:     []post.Comment{},
		CreatedAt:    time.Now().UTC(),
	}
	s.NoError(s.postRepo.Save(ctx, newPost))

	newPost.Likes = []post.Like{{UserID: s.testOwner.ID}}
	newPost.Comments = []post.Comment{{
		ID:           uuid.New(),
		UserID:       s.testOwner.ID,
		Text:         "a comment",
		AuthorName:   s.testOwner.Name,
		AuthorAvatar: s.testOwner.AvatarURL,
		CreatedAt:    time.Now().UTC(),
	}}
	s.NoError(s.postRepo.Update(ctx, newPost))

	found, err := s.postRepo.FindByID(ctx, newPost.ID)
	s.NoError(err)
	s.Equal("hello from integration", found.Text)
	s.Len(found.Likes, 1)
	s.True(found.LikedBy(s.testOwner.ID))
	s.Len(found.Comments, 1)
	s.Equal("a comment", found.Comments[0].Text)
}

func (s *RepoIntegrationTestSuite) Test_Post_DeleteByOwner() {
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		p := &post.Post{
			ID:        uuid.New(),
			OwnerID:   s.testOwner.ID,
			Text:      "to be removed",
			Likes:     []post.Like{},
			Comments:  []post.Comment{},
			CreatedAt: time.Now().UTC(),
		}
		s.NoError(s.postRepo.Save(ctx, p))
	}

	s.NoError(s.postRepo.DeleteByOwner(ctx, s.testOwner.ID))

	posts, err := s.postRepo.List(ctx, 50, 0)
	s.NoError(err)
	for _, p := range posts {
		s.NotEqual(s.testOwner.ID, p.OwnerID)
	}
}

func (s *RepoIntegrationTestSuite) Test_Profile_UpsertRoundTrip() {
	ctx := context.Background()

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &profile.Profile{
		UserID: s.testOwner.ID,
		Status: "Developer",
		Skills: []string{"go", "postgres"},
		Social: profile.SocialLinks{Twitter: "https://twitter.com/owner"},
		Experience: []profile.Experience{{
			ID:      uuid.New(),
			Title:   "Engineer",
			Company: "Acme",
			From:    from,
			Current: true,
		}},
		Education: []profile.Education{},
		UpdatedAt: time.Now().UTC(),
	}
	s.NoError(s.profileRepo.Upsert(ctx, p))

	p.Status = "Senior Developer"
	s.NoError(s.profileRepo.Upsert(ctx, p))

	found, err := s.profileRepo.GetByUserID(ctx, s.testOwner.ID)
	s.NoError(err)
	s.Equal("Senior Developer", found.Status)
	s.Equal([]string{"go", "postgres"}, found.Skills)
	s.Equal("https://twitter.com/owner", found.Social.Twitter)
	s.Len(found.Experience, 1)
	s.True(found.Experience[0].Current)

	_, err = s.profileRepo.GetByUserID(ctx, uuid.New())
	s.ErrorIs(err, profile.ErrProfileNotFound)
}
