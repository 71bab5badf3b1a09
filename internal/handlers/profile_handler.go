package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	service services.ProfileService
}

func NewProfileHandler(service services.ProfileService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetMe godoc
// @Summary Get the caller's full profile
// @Tags profile
// @Produce json
// @Success 200 {object} services.ProfileResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateMe godoc
// @Summary Edit the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body services.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Router /profile/me [patch]
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.ProfileUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ===== TAGS =====

// ReplaceTags godoc
// @Summary Replace the caller's experience tag list
// @Tags profile
// @Accept json
// @Produce json
// @Param request body services.TagsUpdateRequest true "Full tag list"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/tags [put]
func (h *ProfileHandler) ReplaceTags(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.TagsUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	tags, err := h.service.ReplaceTags(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "tags updated", Data: tags})
}

// AddTag godoc
// @Summary Add one experience tag
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/tags [post]
func (h *ProfileHandler) AddTag(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		Tag string `json:"tag"`
	}
	if !h.bindJSON(c, &req) {
		return
	}

	tags, err := h.service.AddTag(c.Request.Context(), userID, req.Tag)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "tag added", Data: tags})
}

// RemoveTag godoc
// @Summary Remove one experience tag
// @Tags profile
// @Produce json
// @Param tag path string true "Tag"
// @Success 200 {object} SuccessResponse
// @Router /profile/me/tags/{tag} [delete]
func (h *ProfileHandler) RemoveTag(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	tags, err := h.service.RemoveTag(c.Request.Context(), userID, c.Param("tag"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "tag removed", Data: tags})
}

// ===== EXPERIENCES =====

// AddExperience godoc
// @Summary Add an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Param request body services.ExperienceCreateRequest true "Experience"
// @Success 201 {object} models.Experience
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/experiences [post]
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.ExperienceCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	experience, err := h.service.AddExperience(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, experience)
}

// UpdateExperience godoc
// @Summary Edit an experience entry
// @Tags profile
// @Accept json
// @Produce json
// @Param id path int true "Experience ID"
// @Param request body services.ExperienceUpdateRequest true "Fields to change"
// @Success 200 {object} models.Experience
// @Failure 403 {object} ErrorResponse
// @Router /profile/me/experiences/{id} [put]
func (h *ProfileHandler) UpdateExperience(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.ExperienceUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	experience, err := h.service.UpdateExperience(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, experience)
}

// DeleteExperience godoc
// @Summary Delete an experience entry
// @Tags profile
// @Produce json
// @Param id path int true "Experience ID"
// @Success 200 {object} SuccessResponse
// @Router /profile/me/experiences/{id} [delete]
func (h *ProfileHandler) DeleteExperience(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteExperience(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "experience deleted"})
}

// ===== ENROLLED COURSES =====

// AddEnrolledCourse godoc
// @Summary Record a course the caller takes or took
// @Tags profile
// @Accept json
// @Produce json
// @Param request body services.EnrolledCourseCreateRequest true "Enrolled course"
// @Success 201 {object} models.EnrolledCourse
// @Failure 400 {object} ErrorResponse
// @Router /profile/me/courses [post]
func (h *ProfileHandler) AddEnrolledCourse(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.EnrolledCourseCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.AddEnrolledCourse(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// UpdateEnrolledCourse godoc
// @Summary Edit an enrolled course record
// @Tags profile
// @Accept json
// @Produce json
// @Param id path int true "Enrolled course ID"
// @Param request body services.EnrolledCourseUpdateRequest true "Fields to change"
// @Success 200 {object} models.EnrolledCourse
// @Router /profile/me/courses/{id} [put]
func (h *ProfileHandler) UpdateEnrolledCourse(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.EnrolledCourseUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.UpdateEnrolledCourse(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteEnrolledCourse godoc
// @Summary Delete an enrolled course record
// @Tags profile
// @Produce json
// @Param id path int true "Enrolled course ID"
// @Success 200 {object} SuccessResponse
// @Router /profile/me/courses/{id} [delete]
func (h *ProfileHandler) DeleteEnrolledCourse(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteEnrolledCourse(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "enrolled course deleted"})
}

// ===== FILE UPLOADS =====

// UploadFile godoc
// @Summary Upload a profile file (resume, photo or cover)
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "File kind (resume|photo|cover)"
// @Param file formData file true "File"
// @Success 200 {object} SuccessResponse
// @Failure 422 {object} ErrorResponse
// @Router /profile/me/files/{kind} [post]
func (h *ProfileHandler) UploadFile(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "a file form field is required",
			Details: err.Error(),
		})
		return
	}

	url, err := h.service.UploadFile(c.Request.Context(), userID, c.Param("kind"), header)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "file uploaded",
		Data:    gin.H{"url": url},
	})
}
