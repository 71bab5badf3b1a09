package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	service services.CourseService
}

func NewCourseHandler(service services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create godoc
// @Summary Register a course the caller teaches
// @Tags courses
// @Accept json
// @Produce json
// @Param request body services.CourseCreateRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.CourseCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// Get godoc
// @Summary Get one course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// Update godoc
// @Summary Edit an offered course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body services.CourseUpdateRequest true "Fields to change"
// @Success 200 {object} models.Course
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.CourseUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// Delete godoc
// @Summary Delete an offered course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "course deleted"})
}

// ListMine godoc
// @Summary List the caller's offered courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Router /courses/mine [get]
func (h *CourseHandler) ListMine(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	courses, err := h.service.ListMyCourses(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}
