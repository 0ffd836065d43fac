package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	postUC "github.com/khoahotran/devlink/internal/application/usecase/post"
	"github.com/khoahotran/devlink/pkg/apperror"
)

type PostHandler struct {
	createPostUseCase  *postUC.CreatePostUseCase
	listPostsUseCase   *postUC.ListPostsUseCase
	getPostUseCase     *postUC.GetPostUseCase
	deletePostUseCase  *postUC.DeletePostUseCase
	likePostUseCase    *postUC.LikePostUseCase
	commentPostUseCase *postUC.CommentPostUseCase
}

func NewPostHandler(
	createUC *postUC.CreatePostUseCase,
	listUC *postUC.ListPostsUseCase,
	getUC *postUC.GetPostUseCase,
	deleteUC *postUC.DeletePostUseCase,
	likeUC *postUC.LikePostUseCase,
	commentUC *postUC.CommentPostUseCase,
) *PostHandler {
	return &PostHandler{
		createPostUseCase:  createUC,
		listPostsUseCase:   listUC,
		getPostUseCase:     getUC,
		deletePostUseCase:  deleteUC,
		likePostUseCase:    likeUC,
		commentPostUseCase: commentUC,
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	callerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidationFailed(map[string]string{"text": "Text is required"}))
		return
	}

	output, err := h.createPostUseCase.Execute(c.Request.Context(), postUC.CreatePostInput{
		CallerID: callerID,
		Text:     req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPostDTO(output.Post))
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, offset := parsePagination(c)
	output, err := h.listPostsUseCase.Execute(c.Request.Context(), postUC.ListPostsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPostDTOs(output.Posts))
}

func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return
	}

	output, err := h.getPostUseCase.Execute(c.Request.Context(), postUC.GetPostInput{PostID: postID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPostDTO(output.Post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	callerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return
	}

	if err := h.deletePostUseCase.Execute(c.Request.Context(), postUC.DeletePostInput{
		PostID:   postID,
		CallerID: callerID,
	}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *PostHandler) LikePost(c *gin.Context) {
	h.toggleLike(c, true)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	h.toggleLike(c, false)
}

func (h *PostHandler) toggleLike(c *gin.Context, like bool) {
	callerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return
	}

	input := postUC.LikePostInput{PostID: postID, CallerID: callerID}
	var output *postUC.LikePostOutput
	if like {
		output, err = h.likePostUseCase.ExecuteLike(c.Request.Context(), input)
	} else {
		output, err = h.likePostUseCase.ExecuteUnlike(c.Request.Context(), input)
	}
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToLikeDTOs(output.Likes))
}

func (h *PostHandler) AddComment(c *gin.Context) {
	callerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidationFailed(map[string]string{"text": "Text is required"}))
		return
	}

	output, err := h.commentPostUseCase.ExecuteAddComment(c.Request.Context(), postUC.AddCommentInput{
		PostID:   postID,
		CallerID: callerID,
		Text:     req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToCommentDTOs(output.Comments))
}

func (h *PostHandler) DeleteComment(c *gin.Context) {
	callerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Post", c.Param("id")))
		return
	}

	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Comment", c.Param("comment_id")))
		return
	}

	output, err := h.commentPostUseCase.ExecuteDeleteComment(c.Request.Context(), postUC.DeleteCommentInput{
		PostID:    postID,
		CommentID: commentID,
		CallerID:  callerID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToCommentDTOs(output.Comments))
}
