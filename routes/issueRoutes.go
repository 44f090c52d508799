package routes

import (
	"github.com/gin-gonic/gin"

	"civicreport-be/controllers"
	"civicreport-be/middlewares"
)

// IssueRoutes sets up issue reporting and listing routes. The report
// endpoint is rate limited per user when Redis is configured.
func IssueRoutes(r *gin.Engine, reportLimit int, rateLimited bool) {
	reportHandlers := []gin.HandlerFunc{middlewares.AuthMiddleware()}
	if rateLimited {
		reportHandlers = append(reportHandlers, middlewares.IssueRateLimiter(reportLimit))
	}
	reportHandlers = append(reportHandlers, controllers.CreateIssue)

	r.POST("/report", reportHandlers...)
	r.GET("/myreports", middlewares.AuthMiddleware(), controllers.GetMyReports)
	r.GET("/issues", controllers.GetAllIssues)
}
