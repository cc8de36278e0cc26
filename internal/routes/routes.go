package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
	"leadflow/internal/handlers"
	"leadflow/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtKey []byte,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leadHandler *handlers.LeadHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/login", authHandler.Login)
	r.POST("/register", userHandler.Register)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	})

	// ---- protected
	r.Use(middleware.AuthMiddleware(jwtKey))

	// USERS
	users := r.Group("/users")
	{
		users.POST("/", userHandler.CreateUser)
		users.GET("/", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUserByID)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeactivateUser)
	}

	// LEADS
	leads := r.Group("/leads")
	{
		leads.POST("/", leadHandler.Create)
		leads.GET("/", leadHandler.List)
		leads.GET("/:id", leadHandler.GetByID)
		leads.PUT("/:id", leadHandler.Update)
		leads.DELETE("/:id", leadHandler.Deactivate)
	}

	// REPORTS (admin)
	reports := r.Group("/reports", middleware.RequireRoles(authz.RoleAdmin))
	{
		reports.GET("/leads/summary", reportHandler.LeadSummary)
		reports.GET("/leads/export", reportHandler.ExportLeadSummary)
	}

	return r
}
