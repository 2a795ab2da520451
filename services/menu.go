package services

import (
	"errors"
	"sort"

	"github.com/warungku/warungku-api/models"
	"gorm.io/gorm"
)

// EffectiveItem is a MenuItem as one outlet sells it: the outlet's price
// override applied, unavailable items already filtered out.
type EffectiveItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Price       int64  `json:"price"`
	IsFeatured  bool   `json:"isFeatured"`
	CategoryID  uint   `json:"categoryId"`
	SortOrder   int    `json:"-"`
}

// MenuSection groups effective items under an active category.
type MenuSection struct {
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Items        []EffectiveItem `json:"items"`
}

// MergeOutletOverrides applies an outlet's settings to the store's globally
// available items. An override row can only restrict or reprice an item that
// exists globally; a nil PriceOverride keeps the global price (zero is a
// valid discount). Items whose effective availability is false are dropped.
func MergeOutletOverrides(items []models.MenuItem, settings []models.OutletMenuSetting) []EffectiveItem {
	overrides := make(map[uint]models.OutletMenuSetting, len(settings))
	for _, s := range settings {
		overrides[s.MenuItemID] = s
	}

	effective := make([]EffectiveItem, 0, len(items))
	for _, item := range items {
		price := item.Price
		available := item.IsAvailable

		if o, ok := overrides[item.ID]; ok {
			available = o.IsAvailable
			if o.PriceOverride != nil {
				price = *o.PriceOverride
			}
		}

		if !available {
			continue
		}

		effective = append(effective, EffectiveItem{
			ID:          item.ID,
			Name:        item.Name,
			Slug:        item.Slug,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			Price:       price,
			IsFeatured:  item.IsFeatured,
			CategoryID:  item.CategoryID,
			SortOrder:   item.SortOrder,
		})
	}
	return effective
}

// EffectiveMenu computes the menu a given outlet's customers see, grouped by
// active category in category sort order, items in item sort order. Empty
// categories are dropped. The outlet must belong to the store and be active;
// a miss aborts with ErrNotFound so callers can tell "no such outlet" apart
// from "outlet with an empty menu".
func EffectiveMenu(db *gorm.DB, storeID, outletID uint) ([]MenuSection, error) {
	var outlet models.Outlet
	err := db.Where("id = ? AND store_id = ? AND is_active = ?", outletID, storeID, true).
		First(&outlet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var items []models.MenuItem
	if err := db.Scopes(models.ForStore(storeID)).
		Where("is_available = ?", true).
		Find(&items).Error; err != nil {
		return nil, err
	}

	var settings []models.OutletMenuSetting
	if err := db.Where("outlet_id = ?", outletID).Find(&settings).Error; err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := db.Scopes(models.ForStore(storeID)).
		Where("is_active = ?", true).
		Order("sort_order asc, id asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	effective := MergeOutletOverrides(items, settings)

	byCategory := make(map[uint][]EffectiveItem)
	for _, item := range effective {
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	sections := make([]MenuSection, 0, len(categories))
	for _, category := range categories {
		items := byCategory[category.ID]
		if len(items) == 0 {
			continue
		}
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortOrder < items[j].SortOrder
		})
		sections = append(sections, MenuSection{
			CategoryID:   category.ID,
			CategoryName: category.Name,
			Items:        items,
		})
	}
	return sections, nil
}

// UpsertOutletMenuSetting creates or updates the single override row for
// (outlet, menu item). The item must exist globally in the same store.
func UpsertOutletMenuSetting(db *gorm.DB, storeID, outletID, menuItemID uint, isAvailable bool, priceOverride *int64) (*models.OutletMenuSetting, error) {
	var item models.MenuItem
	err := db.Where("id = ? AND store_id = ?", menuItemID, storeID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var setting models.OutletMenuSetting
	err = db.Where("outlet_id = ? AND menu_item_id = ?", outletID, menuItemID).First(&setting).Error
	switch {
	case err == nil:
		setting.IsAvailable = isAvailable
		setting.PriceOverride = priceOverride
		if err := db.Save(&setting).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.OutletMenuSetting{
			OutletID:      outletID,
			MenuItemID:    menuItemID,
			IsAvailable:   isAvailable,
			PriceOverride: priceOverride,
		}
		if err := db.Create(&setting).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return &setting, nil
}

// DeleteOutletMenuSetting reverts an item to its global defaults for one
// outlet. Idempotent: deleting an override that does not exist succeeds.
func DeleteOutletMenuSetting(db *gorm.DB, outletID, menuItemID uint) error {
	return db.Unscoped().
		Where("outlet_id = ? AND menu_item_id = ?", outletID, menuItemID).
		Delete(&models.OutletMenuSetting{}).Error
}
