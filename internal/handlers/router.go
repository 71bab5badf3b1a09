package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-connect/campus-service/internal/models"
	"github.com/campus-connect/campus-service/internal/services"
	"github.com/campus-connect/campus-service/internal/utils"
)

// HandlerManager wires the HTTP layer: one handler per resource plus the
// shared middleware.
type HandlerManager struct {
	services services.ServiceManager
	logger   utils.Logger

	auth        *AuthHandler
	directory   *DirectoryHandler
	opportunity *OpportunityHandler
	interest    *InterestHandler
	profile     *ProfileHandler
	course      *CourseHandler
	dashboard   *DashboardHandler
}

func NewHandlerManager(sm services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		services: sm,
		logger:   logger,

		auth:        NewAuthHandler(sm.Auth(), logger),
		directory:   NewDirectoryHandler(sm.Directory(), logger),
		opportunity: NewOpportunityHandler(sm.Opportunity(), logger),
		interest:    NewInterestHandler(sm.Interest(), sm.Export(), logger),
		profile:     NewProfileHandler(sm.Profile(), logger),
		course:      NewCourseHandler(sm.Course(), logger),
		dashboard:   NewDashboardHandler(sm.Dashboard(), logger),
	}
}

// SetupRoutes registers every route on the router. All /api/v1 routes
// require a valid bearer token; role gates sit per route group.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	professorOnly := RequireRoleMiddleware(models.RoleProfessor)
	studentOnly := RequireRoleMiddleware(models.RoleStudent)

	v1 := router.Group("/api/v1")
	v1.Use(CasdoorAuthMiddleware(hm.services.Auth(), hm.logger))
	{
		v1.POST("/auth/session", hm.auth.EstablishSession)

		v1.GET("/directory", hm.directory.Search)
		v1.GET("/directory/:id", hm.directory.GetUser)

		opportunities := v1.Group("/opportunities")
		{
			opportunities.GET("", hm.opportunity.List)
			opportunities.GET("/mine", professorOnly, hm.opportunity.ListMine)
			opportunities.POST("", professorOnly, hm.opportunity.Create)
			opportunities.GET("/:id", hm.opportunity.Get)
			opportunities.PUT("/:id", professorOnly, hm.opportunity.Update)
			opportunities.DELETE("/:id", professorOnly, hm.opportunity.Delete)

			opportunities.POST("/:id/interest", studentOnly, hm.interest.Mark)
			opportunities.DELETE("/:id/interest", studentOnly, hm.interest.Remove)
			opportunities.GET("/:id/interests", professorOnly, hm.interest.ListForOpportunity)
			opportunities.GET("/:id/interests/export", professorOnly, hm.interest.Export)
		}

		v1.GET("/interests/mine", studentOnly, hm.interest.ListMine)

		profile := v1.Group("/profile/me")
		{
			profile.GET("", hm.profile.GetMe)
			profile.PATCH("", hm.profile.UpdateMe)

			profile.PUT("/tags", hm.profile.ReplaceTags)
			profile.POST("/tags", hm.profile.AddTag)
			profile.DELETE("/tags/:tag", hm.profile.RemoveTag)

			profile.POST("/experiences", hm.profile.AddExperience)
			profile.PUT("/experiences/:id", hm.profile.UpdateExperience)
			profile.DELETE("/experiences/:id", hm.profile.DeleteExperience)

			profile.POST("/courses", studentOnly, hm.profile.AddEnrolledCourse)
			profile.PUT("/courses/:id", studentOnly, hm.profile.UpdateEnrolledCourse)
			profile.DELETE("/courses/:id", studentOnly, hm.profile.DeleteEnrolledCourse)

			profile.POST("/files/:kind", hm.profile.UploadFile)
		}

		courses := v1.Group("/courses")
		{
			courses.POST("", professorOnly, hm.course.Create)
			courses.GET("/mine", professorOnly, hm.course.ListMine)
			courses.GET("/:id", hm.course.Get)
			courses.PUT("/:id", professorOnly, hm.course.Update)
			courses.DELETE("/:id", professorOnly, hm.course.Delete)
		}

		v1.GET("/dashboard/stats", professorOnly, hm.dashboard.GetStats)
	}

	router.GET("/health", hm.healthCheck)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.services.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
