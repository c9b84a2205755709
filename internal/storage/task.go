package storage

import (
	"time"

	"gorm.io/gorm"

	"github.com/markgregr/taskflow_REST_server/internal/models"
)

// TaskFilter narrows and orders a task listing. Filter values are applied
// as-is: an unknown status simply matches nothing instead of failing
// validation.
type TaskFilter struct {
	Status   string
	Category string
	Priority string
	SortBy   string
	Order    string
	Nested   bool
}

var taskSortColumns = map[string]string{
	"dueDate":   "due_date",
	"createdAt": "created_at",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

func (s *Storage) CreateTask(task *models.Task) error {
	return translate(s.db.Create(task).Error)
}

func (s *Storage) SaveTask(task *models.Task) error {
	return translate(s.db.Save(task).Error)
}

// visibleTasks scopes a query to the actor's view: tasks assigned to them,
// or unassigned tasks they created.
func visibleTasks(db *gorm.DB, actorID string) *gorm.DB {
	return db.Where("is_deleted = ?", false).
		Where("(user_id = ? OR (user_id IS NULL AND created_by = ?))", actorID, actorID)
}

// TaskByID resolves a non-deleted task regardless of ownership, used for
// parent lookups and the assign operations.
func (s *Storage) TaskByID(id string) (*models.Task, error) {
	var task models.Task
	err := s.db.Where("id = ? AND is_deleted = ?", id, false).First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// VisibleTaskByID resolves a task the actor may act on.
func (s *Storage) VisibleTaskByID(id, actorID string) (*models.Task, error) {
	var task models.Task
	err := visibleTasks(s.db, actorID).Where("id = ?", id).First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

// VisibleTaskByIDAny is VisibleTaskByID without the soft-delete filter, so
// mutations can tell "already deleted" (400) apart from "not yours" (404).
func (s *Storage) VisibleTaskByIDAny(id, actorID string) (*models.Task, error) {
	var task models.Task
	err := s.db.
		Where("id = ?", id).
		Where("(user_id = ? OR (user_id IS NULL AND created_by = ?))", actorID, actorID).
		First(&task).Error
	if err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (s *Storage) ListTasks(actorID string, filter TaskFilter) ([]models.Task, error) {
	q := visibleTasks(s.db, actorID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	column, ok := taskSortColumns[filter.SortBy]
	if !ok {
		column = "due_date"
	}
	direction := "ASC"
	if filter.Order == "desc" {
		direction = "DESC"
	}
	q = q.Order(column + " " + direction)

	if filter.Nested {
		q = q.Preload("Subtasks", "is_deleted = ?", false).
			Preload("Comments", "is_deleted = ?", false)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}

// LiveSubtasks returns the non-deleted direct children of a task.
func (s *Storage) LiveSubtasks(parentID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("parent_task_id = ? AND is_deleted = ?", parentID, false).Find(&tasks).Error
	if err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}

// MarkTaskCommentsDeleted soft-deletes every live comment under a task.
func (s *Storage) MarkTaskCommentsDeleted(taskID, deletedBy string, at time.Time) error {
	return translate(s.db.Model(&models.Comment{}).
		Where("task_id = ? AND is_deleted = ?", taskID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"deleted_by": deletedBy,
		}).Error)
}

// TasksDueBetween lists non-deleted tasks whose due date falls in [from, to),
// with the assignee preloaded for push-token resolution.
func (s *Storage) TasksDueBetween(from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Preload("User").
		Where("is_deleted = ? AND due_date >= ? AND due_date < ?", false, from, to).
		Find(&tasks).Error
	if err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}
