package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/config"
	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

// InitCasdoor configures the shared Casdoor SDK client. Call once at
// startup before serving traffic.
func InitCasdoor(cfg config.CasdoorConfig) {
	casdoorsdk.InitConfig(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Organization,
		cfg.Application,
	)
}

// CasdoorAuthMiddleware authenticates requests with a Casdoor-issued
// bearer token and loads (provisioning on first sight) the local user
// row into the request context.
func CasdoorAuthMiddleware(auth services.AuthService, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "missing bearer token",
			})
			return
		}

		claims, err := casdoorsdk.ParseJwtToken(token)
		if err != nil {
			logger.Warn("token parse failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid or expired token",
			})
			return
		}

		userID := claims.User.Id
		if userID == "" {
			userID = claims.Subject
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "token carries no subject",
			})
			return
		}

		user, err := auth.ProvisionUser(c.Request.Context(), userID)
		if err != nil {
			logger.Error("user provisioning failed", "user_id", userID, "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: "account could not be resolved",
			})
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)
		c.Next()
	}
}

// RequireRoleMiddleware gates a route group to one role. It runs after
// the auth middleware.
func RequireRoleMiddleware(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, ok := GetUserRoleFromContext(c)
		if !ok || userRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Error:   "forbidden",
				Message: string(role) + " role required",
			})
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ===== CONTEXT ACCESSORS =====

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok
}

func GetUserRoleFromContext(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := value.(models.UserRole)
	return role, ok
}

func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
