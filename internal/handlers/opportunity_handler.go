package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type OpportunityHandler struct {
	BaseHandler
	service services.OpportunityService
}

func NewOpportunityHandler(service services.OpportunityService, logger utils.Logger) *OpportunityHandler {
	return &OpportunityHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Create godoc
// @Summary Post a new opportunity
// @Tags opportunities
// @Accept json
// @Produce json
// @Param request body services.OpportunityCreateRequest true "Opportunity"
// @Success 201 {object} models.Opportunity
// @Failure 400 {object} ErrorResponse
// @Router /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.OpportunityCreateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	opportunity, err := h.service.CreateOpportunity(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, opportunity)
}

// Get godoc
// @Summary Get one opportunity
// @Tags opportunities
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} services.OpportunityResponse
// @Failure 404 {object} ErrorResponse
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	opportunity, err := h.service.GetOpportunity(c.Request.Context(), userID, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Update godoc
// @Summary Edit an opportunity
// @Tags opportunities
// @Accept json
// @Produce json
// @Param id path int true "Opportunity ID"
// @Param request body services.OpportunityUpdateRequest true "Fields to change"
// @Success 200 {object} models.Opportunity
// @Failure 403 {object} ErrorResponse
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) Update(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.OpportunityUpdateRequest
	if !h.bindJSON(c, &req) {
		return
	}

	opportunity, err := h.service.UpdateOpportunity(c.Request.Context(), userID, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// Delete godoc
// @Summary Delete an opportunity and its interests
// @Tags opportunities
// @Produce json
// @Param id path int true "Opportunity ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) Delete(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.service.DeleteOpportunity(c.Request.Context(), userID, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "opportunity deleted"})
}

// List godoc
// @Summary List all opportunities (the shared feed)
// @Tags opportunities
// @Produce json
// @Param type query string false "Opportunity type filter"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.OpportunityListResponse
// @Router /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req := h.parseListRequest(c)
	result, err := h.service.ListOpportunities(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListMine godoc
// @Summary List the caller's own opportunities
// @Tags opportunities
// @Produce json
// @Success 200 {object} services.OpportunityListResponse
// @Router /opportunities/mine [get]
func (h *OpportunityHandler) ListMine(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	req := h.parseListRequest(c)
	result, err := h.service.ListMyOpportunities(c.Request.Context(), userID, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *OpportunityHandler) parseListRequest(c *gin.Context) *services.OpportunityListRequest {
	req := &services.OpportunityListRequest{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("type"); raw != "" {
		opportunityType := models.OpportunityType(raw)
		req.Type = &opportunityType
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		req.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		req.Offset = offset
	}
	return req
}
