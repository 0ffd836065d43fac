package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/khoahotran/devlink/internal/application/usecase/auth"
	"github.com/khoahotran/devlink/pkg/apperror"
)

type AuthHandler struct {
	registerUseCase     *authUC.RegisterUseCase
	loginUseCase        *authUC.LoginUseCase
	currentUserUseCase  *authUC.CurrentUserUseCase
	updateAvatarUseCase *authUC.UpdateAvatarUseCase
}

func NewAuthHandler(
	registerUC *authUC.RegisterUseCase,
	loginUC *authUC.LoginUseCase,
	currentUserUC *authUC.CurrentUserUseCase,
	updateAvatarUC *authUC.UpdateAvatarUseCase,
) *AuthHandler {
	return &AuthHandler{
		registerUseCase:     registerUC,
		loginUseCase:        loginUC,
		currentUserUseCase:  currentUserUC,
		updateAvatarUseCase: updateAvatarUC,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for register", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for login", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": output.AccessToken})
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	output, err := h.currentUserUseCase.Execute(c.Request.Context(), authUC.CurrentUserInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.NewValidationFailed(map[string]string{"avatar": "Avatar file is required"}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInvalidInput("cannot open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.updateAvatarUseCase.Execute(c.Request.Context(), authUC.UpdateAvatarInput{
		UserID: userID,
		File:   file,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": output.AvatarURL})
}
