package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
)

// InternalRoutes sets up service-to-service endpoints. These carry no
// end-user auth; deployment must keep them off the public network.
func InternalRoutes(r *gin.Engine) {
	internal := r.Group("/internal")
	{
		internal.POST("/emit_user_notification", controllers.EmitUserNotification)
	}
}
