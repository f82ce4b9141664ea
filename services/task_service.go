package services

import (
	"errors"
	"strings"
	"time"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskInput carries the user-editable task fields for create and edit. A nil
// Deadline or CategoryID clears the corresponding column on update.
type TaskInput struct {
	Title       string     `json:"title" validate:"required,max=50"`
	Description string     `json:"description" validate:"max=500"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

// TaskQuery is the filter/sort/search configuration for listing a user's
// tasks. Zero values mean "all tasks, newest first".
type TaskQuery struct {
	Filter     string
	CategoryID *uuid.UUID
	Sort       string
	Search     string
}

type TaskServiceInterface interface {
	CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error)
	GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	UpdateTask(db *database.Database, userID uuid.UUID, id string, input TaskInput) (models.Task, error)
	DeleteTask(db *database.Database, userID uuid.UUID, id string) error
	ToggleTaskCompletion(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	GetTasks(db *database.Database, userID uuid.UUID, query TaskQuery) ([]models.Task, error)
	SearchTasks(db *database.Database, userID uuid.UUID, keyword string) ([]models.Task, error)
	GetTaskStats(db *database.Database, userID uuid.UUID) (models.TaskStats, error)
}

type TaskService struct {
	validate *validator.Validate
}

func NewTaskService() *TaskService {
	return &TaskService{validate: validator.New()}
}

// priorityOrder fixes the total order for priority sorting; codes outside
// the four quadrants sort last.
const priorityOrder = "CASE priority" +
	" WHEN 'urgent_important' THEN 1" +
	" WHEN 'important_not_urgent' THEN 2" +
	" WHEN 'urgent_not_important' THEN 3" +
	" WHEN 'not_urgent_not_important' THEN 4" +
	" ELSE 5 END"

// GetTasks returns the caller's tasks matching every active predicate of the
// query, ordered by the requested sort. Read-only.
func (s *TaskService) GetTasks(db *database.Database, userID uuid.UUID, query TaskQuery) ([]models.Task, error) {
	now := time.Now().UTC()
	q := db.DB.Model(&models.Task{}).Preload("Category").Where("user_id = ?", userID)

	switch query.Filter {
	case "today":
		q = q.Where("date(deadline) = ? AND is_completed = ?", now.Format("2006-01-02"), false)
	case "overdue":
		q = q.Where("deadline < ? AND is_completed = ?", now, false)
	case "completed":
		q = q.Where("is_completed = ?", true)
	case "pending":
		q = q.Where("is_completed = ?", false)
	}

	if query.CategoryID != nil {
		q = q.Where("category_id = ?", *query.CategoryID)
	}

	if keyword := strings.TrimSpace(query.Search); keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	switch query.Sort {
	case "deadline":
		// Portable NULLS LAST
		q = q.Order("CASE WHEN deadline IS NULL THEN 1 ELSE 0 END, deadline ASC")
	case "priority":
		q = q.Order(priorityOrder).Order("created_at ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// SearchTasks matches the keyword as a substring of title or description,
// newest first.
func (s *TaskService) SearchTasks(db *database.Database, userID uuid.UUID, keyword string) ([]models.Task, error) {
	pattern := "%" + strings.TrimSpace(keyword) + "%"

	var tasks []models.Task
	err := db.DB.Model(&models.Task{}).Preload("Category").
		Where("user_id = ?", userID).
		Where("title LIKE ? OR description LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) GetTaskStats(db *database.Database, userID uuid.UUID) (models.TaskStats, error) {
	var stats models.TaskStats
	now := time.Now().UTC()

	err := db.DB.Model(&models.Task{}).Where("user_id = ?", userID).Count(&stats.Total).Error
	if err != nil {
		return models.TaskStats{}, err
	}
	err = db.DB.Model(&models.Task{}).Where("user_id = ? AND is_completed = ?", userID, true).Count(&stats.Completed).Error
	if err != nil {
		return models.TaskStats{}, err
	}
	err = db.DB.Model(&models.Task{}).Where("user_id = ? AND is_completed = ?", userID, false).Count(&stats.Pending).Error
	if err != nil {
		return models.TaskStats{}, err
	}
	err = db.DB.Model(&models.Task{}).
		Where("user_id = ? AND deadline < ? AND is_completed = ?", userID, now, false).
		Count(&stats.Overdue).Error
	if err != nil {
		return models.TaskStats{}, err
	}
	return stats, nil
}

func (s *TaskService) CreateTask(db *database.Database, userID uuid.UUID, input TaskInput) (models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.validateInput(input); err != nil {
		return models.Task{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if input.CategoryID != nil {
		if err := categoryUsableBy(tx, userID, *input.CategoryID); err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	task := models.Task{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		Priority:    input.Priority,
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return s.GetTaskById(db, userID, task.ID.String())
}

func (s *TaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	var task models.Task
	err := db.DB.Preload("Category").Where("user_id = ?", userID).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask replaces the editable fields of the caller's task. Tasks owned
// by someone else are indistinguishable from missing ones.
func (s *TaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, input TaskInput) (models.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if err := s.validateInput(input); err != nil {
		return models.Task{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if input.CategoryID != nil {
		if err := categoryUsableBy(tx, userID, *input.CategoryID); err != nil {
			tx.Rollback()
			return models.Task{}, err
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"deadline":    input.Deadline,
		"priority":    priority,
		"category_id": input.CategoryID,
	}

	if err := tx.Model(&task).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return s.GetTaskById(db, userID, id)
}

func (s *TaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ToggleTaskCompletion flips is_completed and refreshes updated_at.
func (s *TaskService) ToggleTaskCompletion(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.Where("user_id = ?", userID).First(&task, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	if err := tx.Model(&task).Update("is_completed", !task.IsCompleted).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return s.GetTaskById(db, userID, id)
}

func (s *TaskService) validateInput(input TaskInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	var messages []string
	for _, fe := range fieldErrors {
		messages = append(messages, taskFieldMessage(fe))
	}
	return &ValidationError{Messages: messages}
}

func taskFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Title":
		if fe.Tag() == "required" {
			return "task title must not be empty"
		}
		return "task title must not exceed 50 characters"
	case "Description":
		return "task description must not exceed 500 characters"
	}
	return fe.Error()
}

// categoryUsableBy enforces the task/category ownership invariant: a task
// may only reference a preset category or one owned by the same user.
func categoryUsableBy(tx *gorm.DB, userID uuid.UUID, categoryID uuid.UUID) error {
	var category models.Category
	if err := tx.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewValidationError("category does not exist")
		}
		return err
	}

	if category.IsPreset {
		return nil
	}
	if category.UserID == nil || *category.UserID != userID {
		return ErrCategoryForbidden
	}
	return nil
}
