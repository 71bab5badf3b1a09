package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type DirectoryHandler struct {
	BaseHandler
	service services.DirectoryService
}

func NewDirectoryHandler(service services.DirectoryService, logger utils.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Search godoc
// @Summary Search the campus directory
// @Description Lists all users except the caller, narrowed by optional AND-ed filters
// @Tags directory
// @Produce json
// @Param q query string false "Free-text query"
// @Param role query string false "Role filter (student|professor)"
// @Param department query string false "Department filter"
// @Param major query string false "Major filter"
// @Param year query string false "Year filter"
// @Success 200 {object} services.DirectoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory [get]
func (h *DirectoryHandler) Search(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req := services.DirectoryRequest{
		Query:      c.Query("q"),
		Department: optionalQuery(c, "department"),
		Major:      optionalQuery(c, "major"),
		Year:       optionalQuery(c, "year"),
	}
	if raw := c.Query("role"); raw != "" {
		role := models.UserRole(raw)
		if role != models.RoleStudent && role != models.RoleProfessor {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "invalid_parameter",
				Message: "role must be student or professor",
				Details: raw,
			})
			return
		}
		req.Role = &role
	}

	result, err := h.service.Search(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUser godoc
// @Summary View another user's profile
// @Tags directory
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} services.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Router /directory/{id} [get]
func (h *DirectoryHandler) GetUser(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_parameter",
			Message: "user id is required",
		})
		return
	}

	profile, err := h.service.GetUser(c.Request.Context(), userID, targetID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func optionalQuery(c *gin.Context, name string) *string {
	if value := c.Query(name); value != "" {
		return &value
	}
	return nil
}
