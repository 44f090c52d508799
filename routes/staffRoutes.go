package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"
)

// StaffRoutes sets up the staff triage routes
func StaffRoutes(r *gin.Engine) {
	staff := r.Group("/staff", middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	{
		staff.GET("/reports", controllers.GetStaffReports)
		staff.POST("/update", controllers.StaffUpdateStatus)
	}
}
