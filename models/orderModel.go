package models

import "gorm.io/gorm"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order captures a checkout. OutletID and TableID are nullable: stores that
// predate multi-outlet support still have orders without an outlet.
// Payment status moves independently of order status (pay-at-counter orders
// can be ready while still unpaid).
type Order struct {
	gorm.Model
	StoreID       uint          `json:"storeId" gorm:"index"`
	OutletID      *uint         `json:"outletId" gorm:"index"`
	TableID       *uint         `json:"tableId"`
	OrderNumber   string        `json:"orderNumber" gorm:"index;size:32"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	Note          string        `json:"note"`
	Status        OrderStatus   `json:"status" gorm:"index;size:16"`
	PaymentStatus PaymentStatus `json:"paymentStatus" gorm:"size:16"`
	Subtotal      int64         `json:"subtotal"`
	Tax           int64         `json:"tax"`
	ServiceCharge int64         `json:"serviceCharge"`
	Total         int64         `json:"total"`
	OrderItems    []OrderItem   `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem copies name and unit price at order time so history survives
// later menu edits.
type OrderItem struct {
	gorm.Model
	OrderID    uint   `json:"orderId" gorm:"index"`
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

type Payment struct {
	gorm.Model
	OrderID uint          `json:"orderId" gorm:"index"`
	Method  string        `json:"method"`
	Status  PaymentStatus `json:"status" gorm:"size:16"`
	Amount  int64         `json:"amount"`
}

// Table is a physical table reachable through a QR code. IsOccupied is
// advisory only; nothing serializes concurrent checkouts against it.
type Table struct {
	gorm.Model
	StoreID    uint   `json:"storeId" gorm:"index"`
	OutletID   *uint  `json:"outletId" gorm:"index"`
	Number     string `json:"number"`
	QRToken    string `json:"qrToken" gorm:"uniqueIndex;size:64"`
	IsOccupied bool   `json:"isOccupied"`
}
