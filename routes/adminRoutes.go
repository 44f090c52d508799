package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"
)

// AdminRoutes sets up the admin oversight routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/reports", controllers.GetAdminReports)
		admin.POST("/update", controllers.AdminUpdateStatus)
	}
}
