package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/citycare/citycare/internal/app/controllers"
	"github.com/citycare/citycare/internal/app/models"
	"github.com/citycare/citycare/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	issueController *controllers.IssueController,
	staffController *controllers.StaffController,
	notificationController *controllers.NotificationController,
	directoryController *controllers.DirectoryController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	redisClient *redis.Client,
	issueRateLimit int,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register/citizen", authController.RegisterCitizen)
		auth.POST("/register/staff", authController.RegisterStaff)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// Active-only directory listings for registration and complaint forms
	v1.GET("/cities", directoryController.ListCities)
	v1.GET("/departments", directoryController.ListDepartments)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		// Citizen complaint routes
		issues := authenticated.Group("/issues")
		issues.Use(authMiddleware.RoleRequired(models.RoleCitizen))
		{
			issues.POST("", middleware.IssueRateLimiter(redisClient, issueRateLimit), issueController.CreateIssue)
			issues.GET("", issueController.ListIssues)
			issues.GET("/summary", issueController.GetSummary)
			issues.GET("/:id", issueController.GetIssue)
			issues.POST("/:id/rating", issueController.RateIssue)
		}

		// Staff complaint routes
		staff := authenticated.Group("/staff")
		staff.Use(authMiddleware.RoleRequired(models.RoleStaff))
		{
			staff.GET("/issues", staffController.ListIssues)
			staff.GET("/issues/:id", staffController.GetIssue)
			staff.POST("/issues/:id/status", staffController.UpdateStatus)
		}

		// Notification routes (all roles)
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.POST("/:id/read", notificationController.MarkRead)
			notifications.POST("/read-all", notificationController.MarkAllRead)
			notifications.DELETE("/read", notificationController.DeleteRead)
			notifications.DELETE("/:id", notificationController.Delete)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminController.Dashboard)

			adminCities := admin.Group("/cities")
			{
				adminCities.GET("", adminController.ListCities)
				adminCities.POST("", adminController.CreateCity)
				adminCities.PUT("/:id", adminController.UpdateCity)
				adminCities.POST("/:id/toggle", adminController.ToggleCity)
			}

			adminDepartments := admin.Group("/departments")
			{
				adminDepartments.GET("", adminController.ListDepartments)
				adminDepartments.POST("", adminController.CreateDepartment)
				adminDepartments.PUT("/:id", adminController.UpdateDepartment)
				adminDepartments.POST("/:id/toggle", adminController.ToggleDepartment)
			}

			adminAccessCodes := admin.Group("/access-codes")
			{
				adminAccessCodes.GET("", adminController.ListAccessCodes)
				adminAccessCodes.POST("", adminController.GenerateAccessCode)
				adminAccessCodes.POST("/:id/toggle", adminController.ToggleAccessCode)
				adminAccessCodes.DELETE("/:id", adminController.DeleteAccessCode)
			}
		}
	}
}
