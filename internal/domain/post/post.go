package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// Like is a membership fact: the user id is either present in the post's
// like set or it is not. It is never duplicated.
type Like struct {
	UserID uuid.UUID `json:"user"`
}

type Comment struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post is persisted as one aggregate: likes and comments travel with it on
// every load and store.
type Post struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`
	Text    string    `json:"text"`
	// Author name and avatar are captured at creation and never re-synced
	// when the author later edits their profile.
	AuthorName   string    `json:"name"`
	AuthorAvatar string    `json:"avatar"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"created_at"`
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

type Repository interface {
	Save(ctx context.Context, p *Post) error
	// Update writes the whole aggregate back, embedded collections included.
	// There is no version check: concurrent writers to the same post follow
	// last-write-wins.
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)
	List(ctx context.Context, limit, offset int) ([]*Post, error)
}
