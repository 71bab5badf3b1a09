package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

// ErrorResponse is the envelope for every error reply.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps replies that carry no resource body.
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries what every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// handleServiceError translates service-layer errors into HTTP replies.
// Anything unrecognized becomes a generic 500 so internals never leak.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_failed",
			Message: "request validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionErr *services.PermissionError
	if errors.As(err, &permissionErr) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: permissionErr.Reason,
		})
		return
	}

	var businessErr *services.BusinessRuleError
	if errors.As(err, &businessErr) {
		status := http.StatusUnprocessableEntity
		switch businessErr.Code {
		case services.CodeRoleMismatch, services.CodeEmailNotVerified:
			status = http.StatusUnauthorized
		case services.CodeDuplicateInterest:
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{
			Error:   businessErr.Code,
			Message: businessErr.Message,
			Details: businessErr.Context,
		})
		return
	}

	if services.IsNotFoundError(err) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
		return
	}

	utils.FromContext(ctx, h.logger).Error("unhandled service error",
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an unexpected error occurred",
	})
}

// parseIDParam reads a positive integer path parameter. On failure it
// writes the 400 reply and returns 0; callers must bail out on 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_parameter",
			Message: "invalid " + name + " parameter",
			Details: raw,
		})
		return 0
	}
	return uint(id)
}

// requireUserID reads the authenticated user from the request context.
// The auth middleware sets it; a missing value means the route was wired
// without authentication.
func (h *BaseHandler) requireUserID(c *gin.Context) (string, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok || userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return "", false
	}
	return userID, true
}

func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "request body could not be parsed",
			Details: err.Error(),
		})
		return false
	}
	return true
}
