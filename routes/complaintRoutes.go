package routes

import (
	"cleanindia-be/controllers"
	"cleanindia-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ComplaintRoutes sets up the citizen complaint routes. limiter runs only on
// submission.
func ComplaintRoutes(api *gin.RouterGroup, ctrl *controllers.ComplaintController, auth middlewares.Authenticator, limiter gin.HandlerFunc) {
	group := api.Group("/complaints", middlewares.AuthMiddleware(auth))
	{
		group.POST("/submit", limiter, ctrl.SubmitComplaint)
		group.GET("/history", ctrl.GetComplaintHistory)
		group.POST("/upload-proof", ctrl.UploadProof)
		group.GET("/:id", ctrl.GetComplaint)
	}
}
