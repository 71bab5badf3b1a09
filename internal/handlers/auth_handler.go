package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// EstablishSession godoc
// @Summary Establish a portal session
// @Description Verifies the signed-in account may use the chosen portal role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body services.SessionRequest true "Portal role"
// @Success 200 {object} services.SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/session [post]
func (h *AuthHandler) EstablishSession(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}

	var req services.SessionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	session, err := h.service.EstablishSession(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}
