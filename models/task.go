package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority codes for the four urgency/importance quadrants.
const (
	PriorityUrgentImportant       = "urgent_important"
	PriorityImportantNotUrgent    = "important_not_urgent"
	PriorityUrgentNotImportant    = "urgent_not_important"
	PriorityNotUrgentNotImportant = "not_urgent_not_important"
)

// DefaultPriority is assigned when a task is created without one.
const DefaultPriority = PriorityImportantNotUrgent

// unknownPriorityRank sorts codes outside the four quadrants after all
// known ones.
const unknownPriorityRank = 5

var priorityRanks = map[string]int{
	PriorityUrgentImportant:       1,
	PriorityImportantNotUrgent:    2,
	PriorityUrgentNotImportant:    3,
	PriorityNotUrgentNotImportant: 4,
}

var priorityLabels = map[string]string{
	PriorityUrgentImportant:       "Urgent & Important",
	PriorityImportantNotUrgent:    "Important, Not Urgent",
	PriorityUrgentNotImportant:    "Urgent, Not Important",
	PriorityNotUrgentNotImportant: "Not Urgent, Not Important",
}

// PriorityRank returns the position of a priority code in the fixed total
// order used for sorting.
func PriorityRank(priority string) int {
	if rank, ok := priorityRanks[priority]; ok {
		return rank
	}
	return unknownPriorityRank
}

// PriorityLabel returns the display string for a priority code. Unknown
// codes map to a fallback label instead of failing.
func PriorityLabel(priority string) string {
	if label, ok := priorityLabels[priority]; ok {
		return label
	}
	return "Unknown"
}

func IsValidPriority(priority string) bool {
	_, ok := priorityRanks[priority]
	return ok
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID" json:"-"`
	Title       string     `gorm:"size:50;not null" json:"title"`
	Description string     `gorm:"size:500" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `gorm:"size:30;not null" json:"priority"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = DefaultPriority
	}
	return nil
}

// IsOverdue reports whether the task has a deadline in the past and is not
// completed. Completing a task makes it non-overdue regardless of deadline.
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && !t.IsCompleted
}

// IsToday compares only the UTC calendar date of the deadline against now.
func (t *Task) IsToday(now time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	dy, dm, dd := t.Deadline.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return dy == ny && dm == nm && dd == nd
}

// TaskDTO is the wire representation of a task including the derived
// fields, which are computed against a caller-supplied clock.
type TaskDTO struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Deadline      *time.Time `json:"deadline"`
	Priority      string     `json:"priority"`
	PriorityLabel string     `json:"priority_label"`
	IsCompleted   bool       `json:"is_completed"`
	IsOverdue     bool       `json:"is_overdue"`
	IsToday       bool       `json:"is_today"`
	CategoryID    *uuid.UUID `json:"category_id"`
	CategoryName  *string    `json:"category_name"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (t *Task) ToDTO(now time.Time) TaskDTO {
	var categoryName *string
	if t.Category != nil {
		categoryName = &t.Category.Name
	}
	return TaskDTO{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Deadline:      t.Deadline,
		Priority:      t.Priority,
		PriorityLabel: PriorityLabel(t.Priority),
		IsCompleted:   t.IsCompleted,
		IsOverdue:     t.IsOverdue(now),
		IsToday:       t.IsToday(now),
		CategoryID:    t.CategoryID,
		CategoryName:  categoryName,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// TaskStats summarizes a user's tasks for the dashboard header.
type TaskStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Overdue   int64 `json:"overdue"`
}
