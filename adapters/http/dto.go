package http

import (
	"time"

	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/internal/domain/profile"
	"github.com/khoahotran/devlink/internal/domain/user"
)

// Auth DTOs

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Profile DTOs

type UpsertProfileRequest struct {
	Status         string `json:"status"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"github_username"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type EducationDTO struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type ProfileDTO struct {
	UserID         string              `json:"user_id"`
	Status         string              `json:"status"`
	Company        string              `json:"company"`
	Website        string              `json:"website"`
	Location       string              `json:"location"`
	Bio            string              `json:"bio"`
	GithubUsername string              `json:"github_username"`
	Skills         []string            `json:"skills"`
	Social         profile.SocialLinks `json:"social"`
	Experience     []ExperienceDTO     `json:"experience"`
	Education      []EducationDTO      `json:"education"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	dto := ProfileDTO{
		UserID:         p.UserID.String(),
		Status:         p.Status,
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		GithubUsername: p.GithubUsername,
		Skills:         p.Skills,
		Social:         p.Social,
		UpdatedAt:      p.UpdatedAt,
	}
	dto.Experience = make([]ExperienceDTO, len(p.Experience))
	for i, e := range p.Experience {
		dto.Experience[i] = ExperienceDTO{
			ID:          e.ID.String(),
			Title:       e.Title,
			Company:     e.Company,
			Location:    e.Location,
			From:        e.From,
			To:          e.To,
			Current:     e.Current,
			Description: e.Description,
		}
	}
	dto.Education = make([]EducationDTO, len(p.Education))
	for i, e := range p.Education {
		dto.Education[i] = EducationDTO{
			ID:           e.ID.String(),
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			From:         e.From,
			To:           e.To,
			Current:      e.Current,
			Description:  e.Description,
		}
	}
	return dto
}

func ToProfileDTOs(profiles []*profile.Profile) []ProfileDTO {
	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = ToProfileDTO(p)
	}
	return dtos
}

type AddExperienceRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"field_of_study" binding:"required"`
	From         time.Time  `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

// Post DTOs

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type LikeDTO struct {
	User string `json:"user"`
}

type CommentDTO struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type PostDTO struct {
	ID        string       `json:"id"`
	OwnerID   string       `json:"owner_id"`
	Text      string       `json:"text"`
	Name      string       `json:"name"`
	Avatar    string       `json:"avatar"`
	Likes     []LikeDTO    `json:"likes"`
	Comments  []CommentDTO `json:"comments"`
	CreatedAt time.Time    `json:"created_at"`
}

func ToLikeDTOs(likes []post.Like) []LikeDTO {
	dtos := make([]LikeDTO, len(likes))
	for i, l := range likes {
		dtos[i] = LikeDTO{User: l.UserID.String()}
	}
	return dtos
}

func ToCommentDTOs(comments []post.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = CommentDTO{
			ID:        c.ID.String(),
			User:      c.UserID.String(),
			Text:      c.Text,
			Name:      c.AuthorName,
			Avatar:    c.AuthorAvatar,
			CreatedAt: c.CreatedAt,
		}
	}
	return dtos
}

func ToPostDTO(p *post.Post) PostDTO {
	return PostDTO{
		ID:        p.ID.String(),
		OwnerID:   p.OwnerID.String(),
		Text:      p.Text,
		Name:      p.AuthorName,
		Avatar:    p.AuthorAvatar,
		Likes:     ToLikeDTOs(p.Likes),
		Comments:  ToCommentDTOs(p.Comments),
		CreatedAt: p.CreatedAt,
	}
}

func ToPostDTOs(posts []*post.Post) []PostDTO {
	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = ToPostDTO(p)
	}
	return dtos
}
