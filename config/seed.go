package config

import (
	"os"

	"gorm.io/gorm"

	"trendline/models"
	"trendline/utils"
)

// SeedAdmin creates the bootstrap admin account when no admin exists.
// Credentials come from ADMIN_EMAIL/ADMIN_PASSWORD with local defaults.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@trendline.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:     email,
		Password:  hash,
		FirstName: "Admin",
		LastName:  "User",
		Role:      models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("SeedAdmin: created admin account %s", email)
	return nil
}

// SeedCatalogDefaults inserts a minimal taxonomy so product creation works
// on a fresh database
func SeedCatalogDefaults(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{{Name: "Tops"}, {Name: "Bottoms"}, {Name: "Shoes"}}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	brands := []models.Brand{{Name: "Generic"}}
	if err := db.Create(&brands).Error; err != nil {
		return err
	}
	colors := []models.Color{{Name: "Black"}, {Name: "White"}}
	if err := db.Create(&colors).Error; err != nil {
		return err
	}
	sizes := []models.Size{{Label: "S"}, {Label: "M"}, {Label: "L"}}
	if err := db.Create(&sizes).Error; err != nil {
		return err
	}

	utils.LogInfo("SeedCatalogDefaults: inserted default taxonomy")
	return nil
}
