package database

import (
	"testing"

	"campus-todo/campustodo/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestClose(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	assert.NotPanics(t, func() {
		database.Close()
	})
}

func TestExecute(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	database := &Database{DB: db}

	err = database.Execute("CREATE TABLE test (id INTEGER PRIMARY KEY, name TEXT)")
	assert.NoError(t, err)

	err = database.Execute("INSERT INTO test (name) VALUES (?)", "test_name")
	assert.NoError(t, err)

	var count int64
	err = db.Table("test").Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = RunMigrations(db)
	assert.NoError(t, err)

	var presets []models.Category
	err = db.Where("is_preset = ?", true).Order("created_at ASC").Find(&presets).Error
	assert.NoError(t, err)
	assert.Len(t, presets, len(PresetCategoryNames))
	for i, preset := range presets {
		assert.Equal(t, PresetCategoryNames[i], preset.Name)
		assert.Nil(t, preset.UserID)
	}
}

func TestSeedPresetCategoriesIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, RunMigrations(db))
	assert.NoError(t, SeedPresetCategories(db))

	var count int64
	err = db.Model(&models.Category{}).Where("is_preset = ?", true).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(len(PresetCategoryNames)), count)
}
