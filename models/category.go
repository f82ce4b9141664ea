package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a task label. Preset categories have a nil UserID, are shared
// by every user and cannot be modified or deleted. User-owned categories are
// visible only to their owner.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:30;not null" json:"name"`
	IsPreset  bool       `gorm:"not null;default:false" json:"is_preset"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CategoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	IsPreset  bool       `json:"is_preset"`
	UserID    *uuid.UUID `json:"user_id"`
	TaskCount int64      `json:"task_count"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Category) ToDTO(taskCount int64) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		IsPreset:  c.IsPreset,
		UserID:    c.UserID,
		TaskCount: taskCount,
		CreatedAt: c.CreatedAt,
	}
}
