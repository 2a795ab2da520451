package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Outlet is a physical location of a Store. Slug is unique per store, not
// globally. Exactly one outlet per store should have IsMain set; the first
// outlet created is marked main automatically.
type Outlet struct {
	gorm.Model
	StoreID              uint           `json:"storeId" gorm:"index;uniqueIndex:idx_store_outlet_slug"`
	Name                 string         `json:"name" binding:"required"`
	Slug                 string         `json:"slug" gorm:"size:64;uniqueIndex:idx_store_outlet_slug"`
	IsMain               bool           `json:"isMain"`
	Address              string         `json:"address"`
	Phone                string         `json:"phone"`
	Theme                datatypes.JSON `json:"theme"`
	Branding             datatypes.JSON `json:"branding"`
	LogoURL              string         `json:"logoUrl"`
	TaxPercent           float64        `json:"taxPercent"`
	ServiceChargePercent float64        `json:"serviceChargePercent"`
	Settings             datatypes.JSON `json:"settings"`
	IsActive             bool           `json:"isActive" gorm:"default:true"`
}

// OutletMenuSetting overrides a store-global MenuItem for one outlet.
// At most one row per (outlet, menu item); absence means "inherit".
// PriceOverride nil means "use the global price". Zero is distinct: it is
// a valid discounted price.
type OutletMenuSetting struct {
	gorm.Model
	OutletID      uint   `json:"outletId" gorm:"uniqueIndex:idx_outlet_menu_item"`
	MenuItemID    uint   `json:"menuItemId" gorm:"uniqueIndex:idx_outlet_menu_item"`
	IsAvailable   bool   `json:"isAvailable"`
	PriceOverride *int64 `json:"priceOverride"`
}
