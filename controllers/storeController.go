package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func GetStore(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var store models.Store
	if err := initializers.DB.First(&store, claims.StoreID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "store not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"store": store})
}

type UpdateStoreData struct {
	Name     *string         `json:"name"`
	Settings *datatypes.JSON `json:"settings"`
}

// UpdateStore edits the store name and the settings blob (business type,
// currency, timezone, onboarding progress).
func UpdateStore(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}
	if claims.Role != models.RoleTenantAdmin && claims.Role != models.RoleOwner {
		sendErrorResponse(ctx, http.StatusForbidden, "only the store admin can edit store settings")
		return
	}

	var updateData UpdateStoreData
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if updateData.Name != nil {
		updates["name"] = *updateData.Name
	}
	if updateData.Settings != nil {
		updates["settings"] = *updateData.Settings
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if err := initializers.DB.Model(&models.Store{}).
		Where("id = ?", claims.StoreID).
		Updates(updates).Error; err != nil {
		log.Println("Store update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var store models.Store
	if err := initializers.DB.First(&store, claims.StoreID).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"store": store})
}
