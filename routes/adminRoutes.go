package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/controllers"
	"github.com/warungku/warungku-api/middlewares"
)

func AdminRoutes(server *gin.Engine) {
	admin := server.Group("/api/admin", middlewares.RequireAuth())
	{
		admin.GET("/store", controllers.GetStore)
		admin.PATCH("/store", controllers.UpdateStore)

		admin.GET("/outlets", controllers.ListOutlets)
		admin.POST("/outlets", controllers.CreateOutlet)
		admin.GET("/outlets/:id", controllers.GetOutlet)
		admin.PATCH("/outlets/:id", controllers.UpdateOutlet)
		admin.DELETE("/outlets/:id", controllers.DeleteOutlet)
		admin.POST("/outlets/:id/logo", controllers.UploadOutletLogo)
		admin.GET("/outlets/:id/menu", controllers.GetOutletMenu)
		admin.PUT("/outlets/:id/menu/:itemId", controllers.UpsertOutletMenuSetting)
		admin.DELETE("/outlets/:id/menu/:itemId", controllers.DeleteOutletMenuSetting)

		admin.GET("/categories", controllers.ListCategories)
		admin.POST("/categories", controllers.CreateCategory)
		admin.PATCH("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		admin.GET("/menu-items", controllers.ListMenuItems)
		admin.POST("/menu-items", controllers.CreateMenuItem)
		admin.PATCH("/menu-items/:id", controllers.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", controllers.DeleteMenuItem)
		admin.POST("/menu-items/:id/image", controllers.UploadMenuItemImage)

		admin.GET("/tables", controllers.ListTables)
		admin.POST("/tables", controllers.CreateTable)
		admin.PATCH("/tables/:id", controllers.UpdateTable)
		admin.DELETE("/tables/:id", controllers.DeleteTable)
		admin.POST("/tables/:id/rotate-qr", controllers.RotateTableQR)

		admin.GET("/orders", controllers.GetOrders)
		admin.GET("/orders/stats", controllers.GetOrderStats)
		admin.GET("/orders/:id", controllers.GetOrder)
		admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		admin.PATCH("/orders/:id/payment", controllers.UpdatePaymentStatus)
	}
}
