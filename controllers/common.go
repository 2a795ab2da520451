package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/middlewares"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/utils"
	"gorm.io/gorm"
)

// Customer-facing message for unexpected failures.
const msgTryAgain = "Terjadi kesalahan. Silakan coba lagi."

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"error": message})
}

func sendSuccessResponse(ctx *gin.Context, status int, data gin.H) {
	payload := gin.H{"success": true}
	for key, value := range data {
		payload[key] = value
	}
	sendJSONResponse(ctx, status, payload)
}

// authedClaims returns the verified session claims, or aborts with 401.
func authedClaims(ctx *gin.Context) (*utils.Claims, bool) {
	claims, ok := middlewares.GetClaims(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "unauthenticated")
		return nil, false
	}
	return claims, true
}

// scopedDB returns the database handle pre-filtered to the caller's store.
// All tenant-owned reads and writes in admin handlers go through this, so a
// missing store filter cannot happen per handler.
func scopedDB(claims *utils.Claims) *gorm.DB {
	return initializers.DB.Scopes(models.ForStore(claims.StoreID))
}

func bucketName() string {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		bucket = "warungku"
	}
	return bucket
}
