package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Warungku API.

AUTH
- POST "/api/auth/register" - Register a store and its owner
- POST "/api/auth/login" - Log in (sets the session cookie)
- POST "/api/auth/logout" - Log out
- GET "/api/auth/me" - Current user and store

ADMIN (session cookie required)
- GET/PATCH "/api/admin/store" - Store settings
- GET/POST "/api/admin/outlets", GET/PATCH/DELETE "/api/admin/outlets/:id"
- POST "/api/admin/outlets/:id/logo" - Upload outlet logo
- GET "/api/admin/outlets/:id/menu" - Effective menu preview
- PUT/DELETE "/api/admin/outlets/:id/menu/:itemId" - Outlet menu overrides
- GET/POST "/api/admin/categories", PATCH/DELETE "/api/admin/categories/:id"
- GET/POST "/api/admin/menu-items", PATCH/DELETE "/api/admin/menu-items/:id"
- POST "/api/admin/menu-items/:id/image" - Upload item photo
- GET/POST "/api/admin/tables", PATCH/DELETE "/api/admin/tables/:id"
- POST "/api/admin/tables/:id/rotate-qr" - Rotate QR token
- GET "/api/admin/orders", GET "/api/admin/orders/:id"
- PATCH "/api/admin/orders/:id/status", PATCH "/api/admin/orders/:id/payment"
- GET "/api/admin/orders/stats"

AI (session cookie required)
- POST "/api/ai/marketing-copy"
- POST "/api/ai/pricing-advice"
- GET "/api/ai/sales-forecast"

CUSTOMER (public)
- GET "/:storeSlug/:outletSlug/menu"
- GET "/:storeSlug/:outletSlug/table/:qrToken"
- POST "/:storeSlug/:outletSlug/checkout"
- GET "/:storeSlug/:outletSlug/order/:orderNumber"`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
