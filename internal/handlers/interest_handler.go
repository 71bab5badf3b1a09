package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type InterestHandler struct {
	BaseHandler
	service services.InterestService
	export  services.ExportService
}

func NewInterestHandler(service services.InterestService, export services.ExportService, logger utils.Logger) *InterestHandler {
	return &InterestHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		export:      export,
	}
}

// Mark godoc
// @Summary Mark interest in an opportunity
// @Tags interests
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 201 {object} models.Interest
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /opportunities/{id}/interest [post]
func (h *InterestHandler) Mark(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	interest, err := h.service.MarkInterest(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

// Remove godoc
// @Summary Remove interest in an opportunity
// @Tags interests
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /opportunities/{id}/interest [delete]
func (h *InterestHandler) Remove(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.RemoveInterest(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "interest removed"})
}

// ListForOpportunity godoc
// @Summary List interested students for an opportunity
// @Tags interests
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {array} services.InterestResponse
// @Failure 403 {object} ErrorResponse
// @Router /opportunities/{id}/interests [get]
func (h *InterestHandler) ListForOpportunity(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	interests, err := h.service.ListForOpportunity(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interests)
}

// Export godoc
// @Summary Export the applicant roster as a spreadsheet
// @Tags interests
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Opportunity ID"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Router /opportunities/{id}/interests/export [get]
func (h *InterestHandler) Export(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	result, err := h.export.ExportInterestRoster(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// ListMine godoc
// @Summary List the caller's marked interests
// @Tags interests
// @Produce json
// @Success 200 {array} services.MyInterestResponse
// @Router /interests/mine [get]
func (h *InterestHandler) ListMine(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	interests, err := h.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interests)
}
