package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryServiceInterface interface {
	GetCategories(db *database.Database, userID uuid.UUID) ([]models.CategoryDTO, error)
	CreateCategory(db *database.Database, userID uuid.UUID, name string) (models.Category, error)
	DeleteCategory(db *database.Database, userID uuid.UUID, id string) error
}

type CategoryService struct{}

func NewCategoryService() *CategoryService {
	return &CategoryService{}
}

// GetCategories returns the categories visible to the user: presets first,
// then the user's own, each group in creation order, with task counts.
func (s *CategoryService) GetCategories(db *database.Database, userID uuid.UUID) ([]models.CategoryDTO, error) {
	var presets []models.Category
	err := db.DB.Where("is_preset = ?", true).Order("created_at ASC").Find(&presets).Error
	if err != nil {
		return nil, err
	}

	var owned []models.Category
	err = db.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&owned).Error
	if err != nil {
		return nil, err
	}

	categories := append(presets, owned...)
	counts, err := taskCountsByCategory(db.DB, categories)
	if err != nil {
		return nil, err
	}

	dtos := make([]models.CategoryDTO, 0, len(categories))
	for i := range categories {
		dtos = append(dtos, categories[i].ToDTO(counts[categories[i].ID]))
	}
	return dtos, nil
}

// CreateCategory inserts a user-owned category. The name must not collide
// with a preset or another of the user's categories.
func (s *CategoryService) CreateCategory(db *database.Database, userID uuid.UUID, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, NewValidationError("category name must not be empty")
	}
	if utf8.RuneCountInString(name) > 30 {
		return models.Category{}, NewValidationError("category name must not exceed 30 characters")
	}

	var count int64
	err := db.DB.Model(&models.Category{}).
		Where("(is_preset = ? AND name = ?) OR (user_id = ? AND name = ?)", true, name, userID, name).
		Count(&count).Error
	if err != nil {
		return models.Category{}, err
	}
	if count > 0 {
		return models.Category{}, ErrCategoryExists
	}

	category := models.Category{Name: name, IsPreset: false, UserID: &userID}
	if err := db.DB.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a user-owned category and reassigns its tasks to
// the unassigned state. Reassignment and deletion commit together; a state
// with orphaned tasks but a live category is never observable.
func (s *CategoryService) DeleteCategory(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var category models.Category
	if err := tx.First(&category, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if category.IsPreset {
		tx.Rollback()
		return ErrPresetCategory
	}
	if category.UserID == nil || *category.UserID != userID {
		tx.Rollback()
		return ErrCategoryForbidden
	}

	// UpdateColumn leaves updated_at untouched on the reassigned tasks.
	err := tx.Model(&models.Task{}).
		Where("category_id = ?", category.ID).
		UpdateColumn("category_id", nil).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func taskCountsByCategory(db *gorm.DB, categories []models.Category) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(categories))
	if len(categories) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(categories))
	for i := range categories {
		ids = append(ids, categories[i].ID)
	}

	type row struct {
		CategoryID uuid.UUID
		Count      int64
	}
	var rows []row
	err := db.Model(&models.Task{}).
		Select("category_id, COUNT(*) AS count").
		Where("category_id IN ?", ids).
		Group("category_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}
