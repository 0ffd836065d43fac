package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

// The profile is one aggregate row: skills, social links, experience and
// education are JSONB columns written back whole on every Upsert. Two
// concurrent writers to the same profile follow last-write-wins.
type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

const profileColumns = `user_id, status, company, website, location, bio, github_username, skills, social, experience, education, updated_at`

func (r *postgresProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
	`
	p, err := r.scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperror.NewInternal("failed to query profile", err)
	}
	return p, nil
}

func (r *postgresProfileRepo) List(ctx context.Context, limit, offset int) ([]*profile.Profile, error) {
	builder := psql.Select(profileColumns).
		From("profiles").
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, _ := builder.ToSql()
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to list profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan profile row", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating profile rows", err)
	}
	return profiles, nil
}

func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	skillsBytes, err := json.Marshal(p.Skills)
	if err != nil {
		return apperror.NewInternal("failed to marshal skills", err)
	}
	socialBytes, err := json.Marshal(p.Social)
	if err != nil {
		return apperror.NewInternal("failed to marshal social links", err)
	}
	experienceBytes, err := json.Marshal(p.Experience)
	if err != nil {
		return apperror.NewInternal("failed to marshal experience", err)
	}
	educationBytes, err := json.Marshal(p.Education)
	if err != nil {
		return apperror.NewInternal("failed to marshal education", err)
	}

	query := `
		INSERT INTO profiles (user_id, status, company, website, location, bio, github_username, skills, social, experience, education, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			status = EXCLUDED.status,
			company = EXCLUDED.company,
			website = EXCLUDED.website,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			github_username = EXCLUDED.github_username,
			skills = EXCLUDED.skills,
			social = EXCLUDED.social,
			experience = EXCLUDED.experience,
			education = EXCLUDED.education,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		p.UserID, p.Status, p.Company, p.Website, p.Location, p.Bio, p.GithubUsername,
		skillsBytes, socialBytes, experienceBytes, educationBytes, p.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return apperror.NewInternal("failed to delete profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) scanProfile(row pgx.Row) (*profile.Profile, error) {
	p := &profile.Profile{}
	var skillsBytes, socialBytes, experienceBytes, educationBytes []byte

	err := row.Scan(
		&p.UserID,
		&p.Status,
		&p.Company,
		&p.Website,
		&p.Location,
		&p.Bio,
		&p.GithubUsername,
		&skillsBytes,
		&socialBytes,
		&experienceBytes,
		&educationBytes,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(skillsBytes, &p.Skills); err != nil {
		r.logger.Warn("Failed to unmarshal skills", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Skills = []string{}
	}
	if err := json.Unmarshal(socialBytes, &p.Social); err != nil {
		r.logger.Warn("Failed to unmarshal social links", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Social = profile.SocialLinks{}
	}
	if err := json.Unmarshal(experienceBytes, &p.Experience); err != nil {
		r.logger.Warn("Failed to unmarshal experience", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Experience = []profile.Experience{}
	}
	if err := json.Unmarshal(educationBytes, &p.Education); err != nil {
		r.logger.Warn("Failed to unmarshal education", zap.String("user_id", p.UserID.String()), zap.Error(err))
		p.Education = []profile.Education{}
	}

	return p, nil
}
