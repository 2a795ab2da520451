package models

import "gorm.io/gorm"

const (
	RoleTenantAdmin = "tenant_admin"
	RoleOutletAdmin = "outlet_admin"
	RoleStaff       = "staff"

	// Legacy role from before multi-outlet support, kept for rows that have
	// not been migrated. Treated as full-store access.
	RoleOwner = "owner"
)

type User struct {
	gorm.Model
	StoreID  uint   `json:"storeId" gorm:"index"`
	Fullname string `json:"fullname"`
	Email    string `json:"email" gorm:"uniqueIndex;size:128"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"size:32"`
}

// UserOutlet assigns an outlet_admin or staff user to an outlet.
// tenant_admin users need no rows here; they see every outlet of the store.
type UserOutlet struct {
	gorm.Model
	UserID   uint `json:"userId" gorm:"uniqueIndex:idx_user_outlet"`
	OutletID uint `json:"outletId" gorm:"uniqueIndex:idx_user_outlet"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
