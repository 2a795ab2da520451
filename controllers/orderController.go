package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/services"
)

func GetOrders(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := scopedDB(claims).Preload("OrderItems")
	countQuery := scopedDB(claims).Model(&models.Order{})

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
		countQuery = countQuery.Where("status = ?", status)
	}
	if outletID := ctx.Query("outletId"); outletID != "" {
		query = query.Where("outlet_id = ?", outletID)
		countQuery = countQuery.Where("outlet_id = ?", outletID)
	}
	if search := ctx.Query("search"); search != "" {
		query = query.Where("order_number LIKE ?", "%"+search+"%")
		countQuery = countQuery.Where("order_number LIKE ?", "%"+search+"%")
	}

	var orders []models.Order
	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var count int64
	countQuery.Count(&count)

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	sendSuccessResponse(ctx, http.StatusOK, gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}

func GetOrder(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	var order models.Order
	if err := scopedDB(claims).Preload("OrderItems").First(&order, orderID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "order not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus advances an order through the staff workflow.
func UpdateOrderStatus(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	var statusData struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&statusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if !services.ValidOrderStatus(statusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid status value")
		return
	}

	order, err := services.UpdateOrderStatus(initializers.DB, claims.StoreID, uint(orderID), statusData.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			sendErrorResponse(ctx, http.StatusBadRequest, "order is already final")
		default:
			log.Println("Order status update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdatePaymentStatus marks an order paid or refunded.
func UpdatePaymentStatus(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "invalid order id")
		return
	}

	var paymentData struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&paymentData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	order, err := services.UpdatePaymentStatus(initializers.DB, claims.StoreID, uint(orderID), paymentData.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			sendErrorResponse(ctx, http.StatusBadRequest, "invalid payment status")
		default:
			log.Println("Payment status update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// GetOrderStats returns order counts grouped by status for the dashboard.
func GetOrderStats(ctx *gin.Context) {
	claims, ok := authedClaims(ctx)
	if !ok {
		return
	}

	type statusCount struct {
		Status models.OrderStatus `json:"status"`
		Count  int64              `json:"count"`
	}

	var counts []statusCount
	if err := scopedDB(claims).Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&counts).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	var open int64
	if err := scopedDB(claims).Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled}).
		Count(&open).Error; err != nil {
		log.Println("Database error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{
		"byStatus":       counts,
		"openOrderCount": open,
	})
}
