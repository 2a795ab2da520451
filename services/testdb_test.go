package services

import (
	"path/filepath"
	"testing"

	"github.com/warungku/warungku-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserOutlet{},
		&models.Store{},
		&models.Outlet{},
		&models.Category{},
		&models.MenuItem{},
		&models.OutletMenuSetting{},
		&models.Table{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedStorefront creates one store with one active outlet, a category, and a
// single available menu item priced 25000.
func seedStorefront(t *testing.T, db *gorm.DB) (models.Store, models.Outlet, models.Category, models.MenuItem) {
	t.Helper()

	store := models.Store{Name: "Warung Budi", Slug: "warung-budi", IsActive: true}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	outlet := models.Outlet{
		StoreID:  store.ID,
		Name:     "Outlet Utama",
		Slug:     "outlet-utama",
		IsMain:   true,
		IsActive: true,
	}
	if err := db.Create(&outlet).Error; err != nil {
		t.Fatalf("failed to seed outlet: %v", err)
	}

	category := models.Category{StoreID: store.ID, Name: "Makanan", Slug: "makanan", SortOrder: 1, IsActive: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}

	item := models.MenuItem{
		StoreID:     store.ID,
		CategoryID:  category.ID,
		Name:        "Nasi Goreng",
		Slug:        "nasi-goreng",
		Price:       25000,
		IsAvailable: true,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}

	return store, outlet, category, item
}
