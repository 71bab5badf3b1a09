package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStats godoc
// @Summary Professor landing-page summary
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Failure 403 {object} ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	dashboard, err := h.service.GetProfessorDashboard(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
