package routes

import (
	"cleanindia-be/controllers"
	"cleanindia-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the staff routes. Every route requires an active admin
// or moderator.
func AdminRoutes(api *gin.RouterGroup, ctrl *controllers.AdminController, auth middlewares.Authenticator) {
	group := api.Group("/admin", middlewares.AuthMiddleware(auth), middlewares.StaffMiddleware(auth))
	{
		group.GET("/dashboard/stats", ctrl.GetDashboardStats)

		group.GET("/users", ctrl.GetAllUsers)
		group.DELETE("/users/:id", ctrl.DeleteUser)

		group.GET("/complaints", ctrl.GetAllComplaints)
		group.GET("/complaints/:id", ctrl.GetComplaintDetails)
		group.PUT("/complaints/:id", ctrl.UpdateComplaintStatus)

		group.GET("/moderators", ctrl.GetModerators)
		group.POST("/moderators", ctrl.CreateModerator)
	}
}
