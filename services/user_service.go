package services

import (
	"errors"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// RegisterInput is the registration payload. Validation tags are evaluated
// all at once so every problem is reported in a single response.
type RegisterInput struct {
	Username        string `json:"username" validate:"required,min=3,max=50"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type UserServiceInterface interface {
	Register(db *database.Database, input RegisterInput) (models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	DeleteUser(db *database.Database, id string) error
}

type UserService struct {
	authService AuthServiceInterface
	validate    *validator.Validate
}

func NewUserService(authService AuthServiceInterface) *UserService {
	return &UserService{
		authService: authService,
		validate:    validator.New(),
	}
}

// Register validates the input, checks username and email uniqueness and
// creates the user with a bcrypt hash. All failures are collected before
// reporting; nothing is persisted unless every check passes.
func (s *UserService) Register(db *database.Database, input RegisterInput) (models.User, error) {
	var messages []string

	if err := s.validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return models.User{}, err
		}
		for _, fe := range fieldErrors {
			messages = append(messages, registerFieldMessage(fe))
		}
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	if input.Username != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
			tx.Rollback()
			return models.User{}, err
		}
		if count > 0 {
			messages = append(messages, ErrUsernameTaken.Error())
		}
	}

	if input.Email != "" {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			tx.Rollback()
			return models.User{}, err
		}
		if count > 0 {
			messages = append(messages, ErrEmailTaken.Error())
		}
	}

	if len(messages) > 0 {
		tx.Rollback()
		return models.User{}, &ValidationError{Messages: messages}
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes the user and everything they own in one transaction.
// Cascades are explicit here rather than declared on the schema.
func (s *UserService) DeleteUser(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Category{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.RevokedToken{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func registerFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		if fe.Tag() == "required" {
			return "username must not be empty"
		}
		return "username must be 3-50 characters"
	case "Email":
		if fe.Tag() == "required" {
			return "email must not be empty"
		}
		return "email is not a valid address"
	case "Password":
		if fe.Tag() == "required" {
			return "password must not be empty"
		}
		return "password must be at least 6 characters"
	case "ConfirmPassword":
		return "passwords do not match"
	}
	return fe.Error()
}
