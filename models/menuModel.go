package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	StoreID   uint   `json:"storeId" gorm:"index"`
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" gorm:"size:64"`
	SortOrder int    `json:"sortOrder"`
	IsActive  bool   `json:"isActive" gorm:"default:true"`
}

// MenuItem belongs to a Store, not an outlet. Its price and availability are
// the global defaults; outlets restrict or reprice it via OutletMenuSetting.
// Prices are whole currency units (rupiah), no minor units.
type MenuItem struct {
	gorm.Model
	StoreID       uint   `json:"storeId" gorm:"index"`
	CategoryID    uint   `json:"categoryId" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Slug          string `json:"slug" gorm:"size:64"`
	Description   string `json:"description"`
	Price         int64  `json:"price"`
	DiscountPrice *int64 `json:"discountPrice"`
	ImageURL      string `json:"imageUrl"`
	IsAvailable   bool   `json:"isAvailable" gorm:"default:true"`
	IsFeatured    bool   `json:"isFeatured"`
	SortOrder     int    `json:"sortOrder"`
}
