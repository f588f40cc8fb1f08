package routes

import (
	"cleanindia-be/controllers"
	"cleanindia-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(api *gin.RouterGroup, ctrl *controllers.AuthController, auth middlewares.Authenticator) {
	group := api.Group("/auth")
	{
		group.POST("/register", ctrl.RegisterUser)
		group.POST("/login", ctrl.LoginUser)
		group.POST("/logout", ctrl.LogoutUser)
		group.GET("/me", middlewares.AuthMiddleware(auth), ctrl.GetMe)
	}
}
