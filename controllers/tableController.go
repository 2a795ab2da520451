package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
)

func ListTables(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	query := scopedDB(claims).Order("id asc")
	if outletID := ctx.Query("outletId"); outletID != "" {
		query = query.Where("outlet_id = ?", outletID)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"tables": tables})
}

type TableData struct {
	Number   string `json:"number" binding:"required"`
	OutletID *uint  `json:"outletId"`
}

func CreateTable(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	var tableData TableData
	if err := ctx.ShouldBindJSON(&tableData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if tableData.OutletID != nil {
		var count int64
		if err := scopedDB(claims).Model(&models.Outlet{}).
			Where("id = ?", *tableData.OutletID).
			Count(&count).Error; err != nil || count == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "outlet not found")
			return
		}
	}

	table := models.Table{
		StoreID:  claims.StoreID,
		OutletID: tableData.OutletID,
		Number:   tableData.Number,
		QRToken:  uuid.NewString(),
	}
	if err := initializers.DB.Create(&table).Error; err != nil {
		log.Println("Table creation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "failed to create table")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{"table": table})
}

func UpdateTable(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid table id")
		return
	}

	var updateData struct {
		Number     *string `json:"number"`
		IsOccupied *bool   `json:"isOccupied"`
	}
	if err := ctx.ShouldBindJSON(&updateData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if updateData.Number != nil {
		updates["number"] = *updateData.Number
	}
	if updateData.IsOccupied != nil {
		updates["is_occupied"] = *updateData.IsOccupied
	}
	if len(updates) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	result := scopedDB(claims).Model(&models.Table{}).
		Where("id = ?", tableID).
		Updates(updates)
	if result.Error != nil {
		log.Println("Table update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "table not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

func DeleteTable(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid table id")
		return
	}

	if err := scopedDB(claims).Delete(&models.Table{}, tableID).Error; err != nil {
		log.Println("Table delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{})
}

// RotateTableQR invalidates the printed QR code by issuing a new token.
func RotateTableQR(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	tableID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid table id")
		return
	}

	newToken := uuid.NewString()
	result := scopedDB(claims).Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("qr_token", newToken)
	if result.Error != nil {
		log.Println("QR rotation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "table not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"qrToken": newToken})
}
