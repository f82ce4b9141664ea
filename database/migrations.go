package database

import (
	"log"

	"campus-todo/campustodo/models"

	"gorm.io/gorm"
)

// PresetCategoryNames are the shared categories every user sees. They are
// seeded once and never owned or deleted by anyone.
var PresetCategoryNames = []string{"Homework", "Exams", "Clubs", "Life"}

// RunMigrations ensures tables are up to date and the preset categories
// exist.
func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
		&models.RevokedToken{},
	)
	if err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	return SeedPresetCategories(db)
}

// SeedPresetCategories inserts the preset categories if none exist yet.
func SeedPresetCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Where("is_preset = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range PresetCategoryNames {
		category := models.Category{Name: name, IsPreset: true, UserID: nil}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}
	log.Println("Seeded preset categories")
	return nil
}
