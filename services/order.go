package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/utils"
	"gorm.io/gorm"
)

// ErrInvalidCart means the checkout payload references an item the outlet
// does not sell, or carries a non-positive quantity.
var ErrInvalidCart = errors.New("invalid cart")

// ErrInvalidTransition means the requested order status change is not allowed.
var ErrInvalidTransition = errors.New("invalid status transition")

type CartLine struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

type CheckoutInput struct {
	StoreID       uint
	OutletID      uint
	TableID       *uint
	CustomerName  string
	CustomerPhone string
	Note          string
	PaymentMethod string
	Lines         []CartLine
}

// GenerateOrderNumber builds a human-readable order number: date prefix plus
// a random hex suffix. Not globally unique by construction, but 6 random
// bytes make a same-day collision vanishingly unlikely.
func GenerateOrderNumber(now time.Time) (string, error) {
	suffix, err := utils.GenerateCode(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix), nil
}

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusPreparing, models.OrderStatusReady,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition allows any move to a valid status as long as the current
// status is not terminal. Staff may skip intermediate states (pending
// straight to ready); completed and cancelled are final.
func CanTransition(from, to models.OrderStatus) bool {
	if !ValidOrderStatus(to) {
		return false
	}
	if from == models.OrderStatusCompleted || from == models.OrderStatusCancelled {
		return false
	}
	return true
}

func roundPercent(amount int64, percent float64) int64 {
	return int64(math.Round(float64(amount) * percent / 100))
}

// Checkout persists a cart as an Order with its OrderItems in one
// transaction, so a failed item insert leaves no orphan order behind. Unit
// prices come from the outlet's effective menu, never from the client, and
// are copied onto the item rows. The Payment stub and the table-occupied
// mark happen after commit and are non-critical: a failure there is logged
// and the order stands.
func Checkout(db *gorm.DB, in CheckoutInput) (*models.Order, error) {
	if len(in.Lines) == 0 {
		return nil, ErrInvalidCart
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidCart
		}
	}

	var outlet models.Outlet
	err := db.Where("id = ? AND store_id = ? AND is_active = ?", in.OutletID, in.StoreID, true).
		First(&outlet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items []models.MenuItem
	if err := db.Scopes(models.ForStore(in.StoreID)).
		Where("is_available = ?", true).
		Find(&items).Error; err != nil {
		return nil, err
	}
	var settings []models.OutletMenuSetting
	if err := db.Where("outlet_id = ?", in.OutletID).Find(&settings).Error; err != nil {
		return nil, err
	}

	effective := make(map[uint]EffectiveItem)
	for _, item := range MergeOutletOverrides(items, settings) {
		effective[item.ID] = item
	}

	var subtotal int64
	orderItems := make([]models.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		item, ok := effective[line.MenuItemID]
		if !ok {
			return nil, ErrInvalidCart
		}
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
		})
		subtotal += item.Price * int64(line.Quantity)
	}

	tax := roundPercent(subtotal, outlet.TaxPercent)
	service := roundPercent(subtotal, outlet.ServiceChargePercent)

	orderNumber, err := GenerateOrderNumber(time.Now())
	if err != nil {
		return nil, err
	}

	outletID := outlet.ID
	order := models.Order{
		StoreID:       in.StoreID,
		OutletID:      &outletID,
		TableID:       in.TableID,
		OrderNumber:   orderNumber,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Note:          in.Note,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		Subtotal:      subtotal,
		Tax:           tax,
		ServiceCharge: service,
		Total:         subtotal + tax + service,
		OrderItems:    orderItems,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	method := in.PaymentMethod
	if method == "" {
		method = "counter"
	}
	payment := models.Payment{
		OrderID: order.ID,
		Method:  method,
		Status:  models.PaymentStatusUnpaid,
		Amount:  order.Total,
	}
	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Order %s saved, but payment stub not created: %v", order.OrderNumber, err)
	}

	if in.TableID != nil {
		result := db.Model(&models.Table{}).
			Where("id = ? AND store_id = ?", *in.TableID, in.StoreID).
			Update("is_occupied", true)
		if result.Error != nil {
			log.Printf("Order %s saved, but table %d not marked occupied: %v", order.OrderNumber, *in.TableID, result.Error)
		}
	}

	return &order, nil
}

// UpdateOrderStatus advances an order within its store, enforcing the
// terminal-state guard. Cancelling a dine-in order frees its table; no
// payment is coming that would release it otherwise. Payment status itself
// moves independently.
func UpdateOrderStatus(db *gorm.DB, storeID, orderID uint, to models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := db.Scopes(models.ForStore(storeID)).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	if err := db.Model(&order).Update("status", to).Error; err != nil {
		return nil, err
	}
	order.Status = to

	if to == models.OrderStatusCancelled && order.TableID != nil {
		if err := db.Model(&models.Table{}).
			Where("id = ?", *order.TableID).
			Update("is_occupied", false).Error; err != nil {
			log.Printf("Order %s cancelled, but table %d not freed: %v", order.OrderNumber, *order.TableID, err)
		}
	}

	return &order, nil
}

// UpdatePaymentStatus marks an order paid or refunded, syncs the payment
// stub, and frees the table once paid.
func UpdatePaymentStatus(db *gorm.DB, storeID, orderID uint, to models.PaymentStatus) (*models.Order, error) {
	if to != models.PaymentStatusUnpaid && to != models.PaymentStatusPaid && to != models.PaymentStatusRefunded {
		return nil, ErrInvalidTransition
	}

	var order models.Order
	err := db.Scopes(models.ForStore(storeID)).First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.Model(&order).Update("payment_status", to).Error; err != nil {
		return nil, err
	}
	order.PaymentStatus = to

	if err := db.Model(&models.Payment{}).
		Where("order_id = ?", order.ID).
		Update("status", to).Error; err != nil {
		log.Printf("Order %s payment status updated, but payment row not synced: %v", order.OrderNumber, err)
	}

	if to == models.PaymentStatusPaid && order.TableID != nil {
		if err := db.Model(&models.Table{}).
			Where("id = ?", *order.TableID).
			Update("is_occupied", false).Error; err != nil {
			log.Printf("Order %s paid, but table %d not freed: %v", order.OrderNumber, *order.TableID, err)
		}
	}

	return &order, nil
}
