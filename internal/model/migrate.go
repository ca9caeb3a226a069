package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for the event log.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&WishEvent{})
}
