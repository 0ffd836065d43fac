package profile

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProfileNotFound = errors.New("profile not found")

// Experience and Education entries live embedded in their profile, newest
// first. They never exist outside it.
type Experience struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type Education struct {
	ID           uuid.UUID  `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Profile struct {
	UserID         uuid.UUID    `json:"user_id"`
	Status         string       `json:"status"`
	Company        string       `json:"company"`
	Website        string       `json:"website"`
	Location       string       `json:"location"`
	Bio            string       `json:"bio"`
	GithubUsername string       `json:"github_username"`
	Skills         []string     `json:"skills"`
	Social         SocialLinks  `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	List(ctx context.Context, limit, offset int) ([]*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
