package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/lamng/dev-network/internal/application/usecase/profile"
	"github.com/lamng/dev-network/pkg/apperror"
)

type ProfileHandler struct {
	getProfile       *profileUC.GetProfileUseCase
	listProfiles     *profileUC.ListProfilesUseCase
	upsertProfile    *profileUC.UpsertProfileUseCase
	addExperience    *profileUC.AddExperienceUseCase
	removeExperience *profileUC.RemoveExperienceUseCase
	addEducation     *profileUC.AddEducationUseCase
	removeEducation  *profileUC.RemoveEducationUseCase
	deleteAccount    *profileUC.DeleteAccountUseCase
}

func NewProfileHandler(
	getProfile *profileUC.GetProfileUseCase,
	listProfiles *profileUC.ListProfilesUseCase,
	upsertProfile *profileUC.UpsertProfileUseCase,
	addExperience *profileUC.AddExperienceUseCase,
	removeExperience *profileUC.RemoveExperienceUseCase,
	addEducation *profileUC.AddEducationUseCase,
	removeEducation *profileUC.RemoveEducationUseCase,
	deleteAccount *profileUC.DeleteAccountUseCase,
) *ProfileHandler {
	return &ProfileHandler{
		getProfile:       getProfile,
		listProfiles:     listProfiles,
		upsertProfile:    upsertProfile,
		addExperience:    addExperience,
		removeExperience: removeExperience,
		addEducation:     addEducation,
		removeEducation:  removeEducation,
		deleteAccount:    deleteAccount,
	}
}

// GetMe handles GET /api/profile/me.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.getProfile.ExecuteOwn(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// Upsert handles POST /api/profile.
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorList(ValidationMessages(err)...))
		return
	}

	input := profileUC.UpsertProfileInput{
		UserID: userID,
		Patch:  req.ToPatch(),
	}
	output, err := h.upsertProfile.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// List handles GET /api/profile.
func (h *ProfileHandler) List(c *gin.Context) {
	output, err := h.listProfiles.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToProfileDTO(p)
	}
	c.JSON(http.StatusOK, dtos)
}

// GetByUserID handles GET /api/profile/user/:user_id. A malformed id gets
// the same client error as an absent profile, never a server fault.
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("Profile not found", err))
		return
	}

	output, err := h.getProfile.ExecuteByUserID(c.Request.Context(), profileUC.GetProfileInput{UserID: targetID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// DeleteAccount handles DELETE /api/profile.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	if err := h.deleteAccount.Execute(c.Request.Context(), profileUC.DeleteAccountInput{UserID: userID}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorList(ValidationMessages(err)...))
		return
	}

	input := profileUC.AddExperienceInput{
		UserID:      userID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        derefTime(req.From),
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	output, err := h.addExperience.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("exp_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("There is no experience with this id", err))
		return
	}

	output, err := h.removeExperience.Execute(c.Request.Context(), profileUC.RemoveExperienceInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorList(ValidationMessages(err)...))
		return
	}

	input := profileUC.AddEducationInput{
		UserID:       userID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         derefTime(req.From),
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	output, err := h.addEducation.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	entryID, err := uuid.Parse(c.Param("edu_id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("There is no education with this id", err))
		return
	}

	output, err := h.removeEducation.Execute(c.Request.Context(), profileUC.RemoveEducationInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
