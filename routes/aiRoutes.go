package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/controllers"
	"github.com/warungku/warungku-api/middlewares"
)

func AIRoutes(server *gin.Engine) {
	aiController := controllers.NewAIController()

	ai := server.Group("/api/ai", middlewares.RequireAuth())
	{
		ai.POST("/marketing-copy", aiController.GenerateMarketingCopy)
		ai.POST("/pricing-advice", aiController.GetPricingAdvice)
		ai.GET("/sales-forecast", aiController.GetSalesForecast)
	}
}
