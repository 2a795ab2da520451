package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the tenant root. Every tenant-owned row carries a StoreID and
// every admin query must be filtered through ForStore.
type Store struct {
	gorm.Model
	Name     string         `json:"name" binding:"required"`
	Slug     string         `json:"slug" gorm:"uniqueIndex;size:64"`
	OwnerID  uint           `json:"ownerId"`
	Settings datatypes.JSON `json:"settings"`
	IsActive bool           `json:"isActive" gorm:"default:true"`
}

// StoreSettings is the shape stored in Store.Settings. Kept as JSON so
// onboarding can grow fields without migrations.
type StoreSettings struct {
	BusinessType   string `json:"businessType"`
	Currency       string `json:"currency"`
	Timezone       string `json:"timezone"`
	OnboardingStep int    `json:"onboardingStep"`
}

// ForStore scopes a query to one tenant. Handlers must never query
// tenant-owned tables without it.
func ForStore(storeID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("store_id = ?", storeID)
	}
}
