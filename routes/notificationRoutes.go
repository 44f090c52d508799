package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"
)

// NotificationRoutes sets up the notification ledger routes
func NotificationRoutes(r *gin.Engine) {
	notifications := r.Group("/notifications", middlewares.AuthMiddleware())
	{
		notifications.GET("", controllers.GetNotifications)
		notifications.POST("/mark-read", controllers.MarkNotificationsRead)
	}
}
