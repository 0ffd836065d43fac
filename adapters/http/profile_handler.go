package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/khoahotran/devlink/internal/application/usecase/profile"
	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase       *profileUC.ProfileUseCase
	deleteAccountUseCase *profileUC.DeleteAccountUseCase
	logger               logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, deleteAccountUC *profileUC.DeleteAccountUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase:       uc,
		deleteAccountUseCase: deleteAccountUC,
		logger:               log,
	}
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewNotFound("Profile", c.Param("user_id")))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, offset := parsePagination(c)
	output, err := h.profileUseCase.ExecuteListProfiles(c.Request.Context(), profileUC.ListProfilesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTOs(output.Profiles))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpsertProfile(c.Request.Context(), profileUC.UpsertProfileInput{
		UserID:         userID,
		Status:         req.Status,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for experience", err))
		return
	}

	output, err := h.profileUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.AddExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	expID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid experience id", err))
		return
	}

	output, err := h.profileUseCase.ExecuteDeleteExperience(c.Request.Context(), profileUC.DeleteExperienceInput{
		UserID:       userID,
		ExperienceID: expID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for education", err))
		return
	}

	output, err := h.profileUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.AddEducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	eduID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid education id", err))
		return
	}

	output, err := h.profileUseCase.ExecuteDeleteEducation(c.Request.Context(), profileUC.DeleteEducationInput{
		UserID:      userID,
		EducationID: eduID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	if err := h.deleteAccountUseCase.Execute(c.Request.Context(), profileUC.DeleteAccountInput{UserID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User and profile deleted"})
}
