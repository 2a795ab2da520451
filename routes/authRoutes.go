package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/controllers"
	"github.com/warungku/warungku-api/middlewares"
)

func AuthRoutes(server *gin.Engine) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logout", controllers.Logout)
		auth.GET("/me", middlewares.RequireAuth(), controllers.Me)
	}
}
