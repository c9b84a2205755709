package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo      TaskStatus = "todo"
	TaskStatusInProcess TaskStatus = "inprocess"
	TaskStatusInReview  TaskStatus = "inreview"
	TaskStatusTesting   TaskStatus = "testing"
	TaskStatusCompleted TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProcess, TaskStatusInReview, TaskStatusTesting, TaskStatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "High"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityHigh, TaskPriorityMedium, TaskPriorityLow:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "Work"
	TaskCategoryPersonal TaskCategory = "Personal"
)

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal:
		return true
	}
	return false
}

// Task is created unassigned unless an assignee is set later through the
// assign/reassign operations. ParentTaskID builds the subtask hierarchy and
// may never reference the task itself.
type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string       `gorm:"not null" json:"title"`
	Description string       `json:"description"`
	DueDate     time.Time    `gorm:"not null" json:"due_date"`
	Priority    TaskPriority `gorm:"not null;default:Medium" json:"priority"`
	Status      TaskStatus   `gorm:"not null;default:todo" json:"status"`
	Category    TaskCategory `gorm:"not null" json:"category"`

	UserID       *string `gorm:"size:36;index" json:"user_id"`
	User         *User   `gorm:"foreignKey:UserID" json:"-"`
	ParentTaskID *string `gorm:"size:36;index" json:"parent_task_id"`

	Subtasks []Task    `gorm:"foreignKey:ParentTaskID" json:"subtasks,omitempty"`
	Comments []Comment `gorm:"foreignKey:TaskID" json:"comments,omitempty"`

	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `json:"-"`
	DeletedBy *string    `gorm:"size:36" json:"-"`
	CreatedBy *string    `gorm:"size:36" json:"-"`
	UpdatedBy *string    `gorm:"size:36" json:"-"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
