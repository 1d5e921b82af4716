package database

import (
	"github.com/yeremiapane/user-admin/models"
	"github.com/yeremiapane/user-admin/utils"
	"gorm.io/gorm"
)

// Migrate creates the users table when it does not exist yet.
func Migrate(db *gorm.DB) error {
	if db.Migrator().HasTable(&models.User{}) {
		utils.InfoLogger.Println("Table users already exists")
		return nil
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		utils.ErrorLogger.Printf("Error creating users table: %v", err)
		return err
	}
	utils.InfoLogger.Println("Created table users")
	return nil
}
