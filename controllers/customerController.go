package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/services"
	"github.com/warungku/warungku-api/utils"
)

// Customer-facing messages are in Indonesian; this surface is public.
const (
	msgOutletNotFound = "Toko atau outlet tidak ditemukan."
	msgTableNotFound  = "Meja tidak ditemukan. Silakan pindai ulang kode QR."
	msgOrderNotFound  = "Pesanan tidak ditemukan."
	msgInvalidOrder   = "Pesanan tidak valid. Periksa kembali keranjang Anda."
)

func resolveStorefront(ctx *gin.Context) (*services.Storefront, bool) {
	storefront, err := services.ResolveStorefront(
		initializers.DB,
		ctx.Param("storeSlug"),
		ctx.Param("outletSlug"),
	)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOutletNotFound)
		} else {
			log.Println("Storefront resolution error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgTryAgain)
		}
		return nil, false
	}
	return storefront, true
}

// GetStorefrontMenu serves the effective menu for one outlet, grouped by
// category, overrides applied.
func GetStorefrontMenu(ctx *gin.Context) {
	storefront, ok := resolveStorefront(ctx)
	if !ok {
		return
	}

	sections, err := services.EffectiveMenu(initializers.DB, storefront.Store.ID, storefront.Outlet.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgOutletNotFound)
		} else {
			log.Println("Effective menu error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgTryAgain)
		}
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{
		"store":  gin.H{"name": storefront.Store.Name, "slug": storefront.Store.Slug},
		"outlet": storefront.Outlet,
		"menu":   sections,
	})
}

// ResolveQRTable maps a scanned QR token to a table of this storefront.
func ResolveQRTable(ctx *gin.Context) {
	storefront, ok := resolveStorefront(ctx)
	if !ok {
		return
	}

	var table models.Table
	err := initializers.DB.Scopes(models.ForStore(storefront.Store.ID)).
		Where("qr_token = ?", ctx.Param("qrToken")).
		First(&table).Error
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgTableNotFound)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"table": table})
}

type CheckoutData struct {
	TableID       *uint               `json:"tableId"`
	CustomerName  string              `json:"customerName" binding:"required"`
	CustomerPhone string              `json:"customerPhone"`
	Note          string              `json:"note"`
	PaymentMethod string              `json:"paymentMethod"`
	Items         []services.CartLine `json:"items" binding:"required,min=1,dive"`
}

// CustomerCheckout turns a cart into an order. Prices come from the outlet's
// effective menu, not the client.
func CustomerCheckout(ctx *gin.Context) {
	storefront, ok := resolveStorefront(ctx)
	if !ok {
		return
	}

	var checkoutData CheckoutData
	if err := ctx.ShouldBindJSON(&checkoutData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidOrder)
		return
	}

	if checkoutData.TableID != nil {
		var count int64
		if err := initializers.DB.Scopes(models.ForStore(storefront.Store.ID)).
			Model(&models.Table{}).
			Where("id = ?", *checkoutData.TableID).
			Count(&count).Error; err != nil || count == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, msgTableNotFound)
			return
		}
	}

	order, err := services.Checkout(initializers.DB, services.CheckoutInput{
		StoreID:       storefront.Store.ID,
		OutletID:      storefront.Outlet.ID,
		TableID:       checkoutData.TableID,
		CustomerName:  checkoutData.CustomerName,
		CustomerPhone: checkoutData.CustomerPhone,
		Note:          checkoutData.Note,
		PaymentMethod: checkoutData.PaymentMethod,
		Lines:         checkoutData.Items,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCart):
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidOrder)
		case errors.Is(err, services.ErrNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, msgOutletNotFound)
		default:
			log.Println("Checkout error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgTryAgain)
		}
		return
	}

	notifyStoreOwner(storefront.Store, order)

	sendSuccessResponse(ctx, http.StatusCreated, gin.H{"order": order})
}

// notifyStoreOwner emails the owner about a new order. Failures are logged
// and do not affect the checkout response.
func notifyStoreOwner(store models.Store, order *models.Order) {
	var owner models.User
	if err := initializers.DB.First(&owner, store.OwnerID).Error; err != nil {
		log.Println("Owner lookup for order notification failed:", err)
		return
	}

	emailData := utils.EmailData{
		Name:        owner.Fullname,
		Message:     "Ada pesanan baru di " + store.Name + ".",
		OrderNumber: order.OrderNumber,
		Total:       fmt.Sprintf("%d", order.Total),
	}
	templatePath := filepath.Join("templates", "order_notification.html")
	if err := utils.SendEmail(owner.Email, "Pesanan baru "+order.OrderNumber, emailData, templatePath); err != nil {
		log.Println("Error sending order notification email:", err)
	}
}

// TrackOrder lets a customer follow their order by its number.
func TrackOrder(ctx *gin.Context) {
	storefront, ok := resolveStorefront(ctx)
	if !ok {
		return
	}

	var order models.Order
	err := initializers.DB.Scopes(models.ForStore(storefront.Store.ID)).
		Preload("OrderItems").
		Where("order_number = ?", ctx.Param("orderNumber")).
		First(&order).Error
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, gin.H{"order": order})
}
