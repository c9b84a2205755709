package storage

import (
	"github.com/markgregr/taskflow_REST_server/internal/models"
)

func (s *Storage) CreateComment(comment *models.Comment) error {
	return translate(s.db.Create(comment).Error)
}

func (s *Storage) SaveComment(comment *models.Comment) error {
	return translate(s.db.Save(comment).Error)
}

// CommentByID resolves a live comment that belongs to the given task.
func (s *Storage) CommentByID(id, taskID string) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Where("id = ? AND task_id = ? AND is_deleted = ?", id, taskID, false).
		First(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// CommentByIDAny is CommentByID without the soft-delete filter, so
// mutations can tell "already deleted" apart from "no such comment".
func (s *Storage) CommentByIDAny(id, taskID string) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Where("id = ? AND task_id = ?", id, taskID).
		First(&comment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// CommentsByTask lists live comments with their author preloaded, newest
// first unless oldestFirst is set.
func (s *Storage) CommentsByTask(taskID string, oldestFirst bool) ([]models.Comment, error) {
	order := "created_at DESC"
	if oldestFirst {
		order = "created_at ASC"
	}
	var comments []models.Comment
	err := s.db.Preload("User").
		Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order(order).
		Find(&comments).Error
	if err != nil {
		return nil, translate(err)
	}
	return comments, nil
}
