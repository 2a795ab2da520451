package services

import (
	"errors"

	"github.com/warungku/warungku-api/models"
	"gorm.io/gorm"
)

// ErrNotFound covers every "no such row in this tenant" condition. Customer
// routes translate it to 404; it is deliberately indistinguishable from
// "exists but belongs to another store".
var ErrNotFound = errors.New("not found")

// Storefront is a resolved public (storeSlug, outletSlug) pair.
type Storefront struct {
	Store  models.Store
	Outlet models.Outlet
}

// ResolveStorefront looks up an active store by slug, then an active outlet
// by (store, slug). Read-only. A miss at either stage is ErrNotFound; the
// customer surface is public, so there is no auth error to return.
func ResolveStorefront(db *gorm.DB, storeSlug, outletSlug string) (*Storefront, error) {
	var store models.Store
	err := db.Where("slug = ? AND is_active = ?", storeSlug, true).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var outlet models.Outlet
	err = db.Where("store_id = ? AND slug = ? AND is_active = ?", store.ID, outletSlug, true).
		First(&outlet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &Storefront{Store: store, Outlet: outlet}, nil
}

// CanAccessOutlet decides whether a user may manage the given outlet.
// tenant_admin and legacy owner rows have implicit access to every outlet of
// their store. outlet_admin needs a UserOutlet assignment row. staff with
// assignment rows is likewise restricted; staff with none is a legacy
// pre-assignment row and keeps full-store access.
func CanAccessOutlet(db *gorm.DB, userID uint, role string, storeID, outletID uint) (bool, error) {
	var outlet models.Outlet
	err := db.Where("id = ? AND store_id = ?", outletID, storeID).First(&outlet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	switch role {
	case models.RoleTenantAdmin, models.RoleOwner:
		return true, nil
	case models.RoleOutletAdmin:
		return hasAssignment(db, userID, outletID)
	case models.RoleStaff:
		var total int64
		if err := db.Model(&models.UserOutlet{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
			return false, err
		}
		if total == 0 {
			return true, nil
		}
		return hasAssignment(db, userID, outletID)
	default:
		return false, nil
	}
}

func hasAssignment(db *gorm.DB, userID, outletID uint) (bool, error) {
	var count int64
	err := db.Model(&models.UserOutlet{}).
		Where("user_id = ? AND outlet_id = ?", userID, outletID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
