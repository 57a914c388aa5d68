package gormrepo

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the journal tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&eventRow{}, &sessionRow{}); err != nil {
		return fmt.Errorf("migrate journal tables: %w", err)
	}
	return nil
}
