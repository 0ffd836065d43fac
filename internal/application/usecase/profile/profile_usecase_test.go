package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/devlink/adapters/event"
	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*profile.Profile{}}
}

func cloneProfile(p *profile.Profile) *profile.Profile {
	cp := *p
	cp.Skills = append([]string{}, p.Skills...)
	cp.Experience = append([]profile.Experience{}, p.Experience...)
	cp.Education = append([]profile.Education{}, p.Education...)
	return &cp
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *fakeProfileRepo) List(_ context.Context, limit, offset int) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	return out, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (r *fakeProfileRepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(r.profiles, userID)
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context) ([]*profile.Profile, bool) { return nil, false }
func (noopCache) Set(context.Context, []*profile.Profile)        {}
func (noopCache) Invalidate(context.Context)                     {}

type recordingCache struct {
	noopCache
	invalidations int
}

func (c *recordingCache) Invalidate(context.Context) { c.invalidations++ }

type stubPublisher struct{}

func (stubPublisher) PublishPostEvent(context.Context, event.PostEventPayload) error { return nil }
func (stubPublisher) PublishProfileEvent(context.Context, event.ProfileEventPayload) error {
	return nil
}

func newTestUseCase(repo profile.Repository, cache ListCache) *ProfileUseCase {
	return NewProfileUseCase(repo, cache, stubPublisher{}, logger.NewNop())
}

func Test_UpsertProfile_CreateRequiresStatusAndSkills(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})

	_, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		UserID: uuid.New(),
		Bio:    "just a bio",
	})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "status")
	assert.Contains(t, appErr.Fields, "skills")
}

func Test_UpsertProfile_SplitsAndTrimsSkills(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})

	output, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		UserID: uuid.New(),
		Status: "Developer",
		Skills: " go , rust ,,postgres",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust", "postgres"}, output.Profile.Skills)
}

func Test_UpsertProfile_MergeKeepsUnsuppliedFields(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, noopCache{})
	userID := uuid.New()

	_, err := uc.ExecuteUpsertProfile(ctx, UpsertProfileInput{
		UserID:   userID,
		Status:   "Developer",
		Skills:   "go,rust",
		Company:  "Acme",
		Twitter:  "https://twitter.com/acme",
		Location: "Hanoi",
	})
	require.NoError(t, err)

	// A later submission carrying only a bio must not clobber anything else.
	output, err := uc.ExecuteUpsertProfile(ctx, UpsertProfileInput{
		UserID: userID,
		Bio:    "ten years of backends",
	})
	require.NoError(t, err)

	p := output.Profile
	assert.Equal(t, "ten years of backends", p.Bio)
	assert.Equal(t, "Developer", p.Status)
	assert.Equal(t, []string{"go", "rust"}, p.Skills)
	assert.Equal(t, "Acme", p.Company)
	assert.Equal(t, "Hanoi", p.Location)
	assert.Equal(t, "https://twitter.com/acme", p.Social.Twitter)
}

func Test_UpsertProfile_InvalidatesListCache(t *testing.T) {
	cache := &recordingCache{}
	uc := newTestUseCase(newFakeProfileRepo(), cache)

	_, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		UserID: uuid.New(),
		Status: "Developer",
		Skills: "go",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)
}

func Test_GetProfile_MissingIsNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})

	_, err := uc.ExecuteGetProfile(context.Background(), GetProfileInput{UserID: uuid.New()})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func seedProfile(t *testing.T, uc *ProfileUseCase) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	_, err := uc.ExecuteUpsertProfile(context.Background(), UpsertProfileInput{
		UserID: userID,
		Status: "Developer",
		Skills: "go",
	})
	require.NoError(t, err)
	return userID
}

func Test_AddExperience_NewestFirst(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})
	userID := seedProfile(t, uc)

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.ExecuteAddExperience(ctx, AddExperienceInput{
		UserID: userID, Title: "Engineer", Company: "Acme", From: from,
	})
	require.NoError(t, err)
	output, err := uc.ExecuteAddExperience(ctx, AddExperienceInput{
		UserID: userID, Title: "Senior Engineer", Company: "Globex", From: from.AddDate(2, 0, 0), Current: true,
	})
	require.NoError(t, err)

	exp := output.Profile.Experience
	require.Len(t, exp, 2)
	assert.Equal(t, "Senior Engineer", exp[0].Title)
	assert.Equal(t, "Engineer", exp[1].Title)
	assert.Nil(t, exp[0].To)
	assert.True(t, exp[0].Current)
}

func Test_AddExperience_ValidatesRequiredFields(t *testing.T) {
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})
	userID := seedProfile(t, uc)

	_, err := uc.ExecuteAddExperience(context.Background(), AddExperienceInput{UserID: userID})

	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "title")
	assert.Contains(t, appErr.Fields, "company")
	assert.Contains(t, appErr.Fields, "from")
}

func Test_DeleteExperience_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})
	userID := seedProfile(t, uc)

	added, err := uc.ExecuteAddExperience(ctx, AddExperienceInput{
		UserID: userID, Title: "Engineer", Company: "Acme",
		From: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, added.Profile.Experience, 1)

	output, err := uc.ExecuteDeleteExperience(ctx, DeleteExperienceInput{
		UserID: userID, ExperienceID: uuid.New(),
	})
	require.NoError(t, err)
	assert.Len(t, output.Profile.Experience, 1)

	output, err = uc.ExecuteDeleteExperience(ctx, DeleteExperienceInput{
		UserID: userID, ExperienceID: added.Profile.Experience[0].ID,
	})
	require.NoError(t, err)
	assert.Empty(t, output.Profile.Experience)
}

func Test_AddEducation_NewestFirstAndValidated(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(newFakeProfileRepo(), noopCache{})
	userID := seedProfile(t, uc)

	_, err := uc.ExecuteAddEducation(ctx, AddEducationInput{UserID: userID})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)

	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = uc.ExecuteAddEducation(ctx, AddEducationInput{
		UserID: userID, School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from,
	})
	require.NoError(t, err)
	output, err := uc.ExecuteAddEducation(ctx, AddEducationInput{
		UserID: userID, School: "Stanford", Degree: "MSc", FieldOfStudy: "CS", From: from.AddDate(4, 0, 0),
	})
	require.NoError(t, err)

	edu := output.Profile.Education
	require.Len(t, edu, 2)
	assert.Equal(t, "Stanford", edu[0].School)
	assert.Equal(t, "MIT", edu[1].School)
}

func Test_ListProfiles_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	uc := newTestUseCase(repo, noopCache{})
	seedProfile(t, uc)

	cached := []*profile.Profile{{UserID: uuid.New(), Status: "cached"}}
	uc.cache = fixedCache{profiles: cached}

	output, err := uc.ExecuteListProfiles(ctx, ListProfilesInput{})
	require.NoError(t, err)
	assert.Equal(t, cached, output.Profiles)

	// Off-default pages bypass the cache.
	output, err = uc.ExecuteListProfiles(ctx, ListProfilesInput{Offset: 50})
	require.NoError(t, err)
	require.Len(t, output.Profiles, 1)
	assert.NotEqual(t, "cached", output.Profiles[0].Status)
}

type fixedCache struct {
	noopCache
	profiles []*profile.Profile
}

func (c fixedCache) Get(context.Context) ([]*profile.Profile, bool) { return c.profiles, true }
