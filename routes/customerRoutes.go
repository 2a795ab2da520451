package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/controllers"
)

// CustomerRoutes are public: the trust boundary is the slug pair in the URL,
// resolved against active stores and outlets only.
func CustomerRoutes(server *gin.Engine) {
	storefront := server.Group("/:storeSlug/:outletSlug")
	{
		storefront.GET("/menu", controllers.GetStorefrontMenu)
		storefront.GET("/table/:qrToken", controllers.ResolveQRTable)
		storefront.POST("/checkout", controllers.CustomerCheckout)
		storefront.GET("/order/:orderNumber", controllers.TrackOrder)
	}
}
