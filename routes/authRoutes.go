package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine) {
	r.POST("/register", controllers.RegisterUser)
	r.POST("/login", controllers.LoginUser)
	r.GET("/me", middlewares.AuthMiddleware(), controllers.GetMe)
}
