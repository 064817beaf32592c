// Package db owns schema migration and sample data seeding.
package db

import (
	"github.com/canvascartel/crm-backend/models"
	"gorm.io/gorm"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Lead{},
		&models.Contact{},
		&models.Deal{},
		&models.CallLog{},
		&models.Task{},
		&models.Activity{},
		&models.Webhook{},
		&models.Expense{},
		&models.Service{},
		&models.Setting{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
	)
}
