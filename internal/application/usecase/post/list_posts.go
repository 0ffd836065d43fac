package post

import (
	"context"

	"github.com/khoahotran/devlink/internal/domain/post"
	"github.com/khoahotran/devlink/pkg/apperror"
)

type ListPostsUseCase struct {
	postRepo post.Repository
}

func NewListPostsUseCase(pRepo post.Repository) *ListPostsUseCase {
	return &ListPostsUseCase{postRepo: pRepo}
}

type ListPostsInput struct {
	Limit  int
	Offset int
}

type ListPostsOutput struct {
	Posts []*post.Post
}

func (uc *ListPostsUseCase) Execute(ctx context.Context, input ListPostsInput) (*ListPostsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 50
	}
	posts, err := uc.postRepo.List(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to list posts", err)
	}
	return &ListPostsOutput{Posts: posts}, nil
}
