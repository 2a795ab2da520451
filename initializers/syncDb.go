package initializers

import (
	"log"

	"github.com/warungku/warungku-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
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
		log.Fatal("Database migration failed:", err)
	}
	log.Println("Database synced successfully.")
}
