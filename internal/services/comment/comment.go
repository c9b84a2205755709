package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/notify"
	"github.com/markgregr/taskflow_REST_server/internal/storage"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyDeleted  = errors.New("comment already deleted")
)

// Service moderates comments: every operation is scoped to a non-deleted
// parent task, and deletion is soft like everywhere else.
type Service struct {
	log    *logrus.Entry
	store  *storage.Storage
	pusher notify.Pusher
}

func New(log *logrus.Logger, store *storage.Storage, pusher notify.Pusher) *Service {
	return &Service{
		log:    logrus.NewEntry(log),
		store:  store,
		pusher: pusher,
	}
}

// Add attaches a comment to a live task and notifies the task owner.
func (s *Service) Add(ctx context.Context, actorID, taskID, content string) (*models.Comment, error) {
	const op = "comment.Service.Add"

	t, err := s.store.TaskByID(taskID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &models.Comment{
		Content:   content,
		TaskID:    t.ID,
		UserID:    &actorID,
		CreatedBy: &actorID,
	}
	if err := s.store.CreateComment(c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifyTaskOwner(ctx, op, t, "New Comment!",
		fmt.Sprintf("A new comment was added on your task %q.", t.Title))
	return c, nil
}

// List returns the live comments of a live task, newest first by default;
// sortBy "older" flips to ascending. Authors come preloaded for the
// response projection.
func (s *Service) List(ctx context.Context, taskID, sortBy string) ([]models.Comment, error) {
	const op = "comment.Service.List"

	if _, err := s.store.TaskByID(taskID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	comments, err := s.store.CommentsByTask(taskID, sortBy == "older")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comments, nil
}

// Update rewrites the comment content. Identical content is a distinct
// "not modified" outcome with no write.
func (s *Service) Update(ctx context.Context, actorID, commentID, taskID, content string) (*models.Comment, bool, error) {
	const op = "comment.Service.Update"

	var (
		updated  *models.Comment
		modified bool
		parent   *models.Task
	)
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.TaskByID(taskID)
		if err != nil {
			return err
		}
		parent = t

		c, err := tx.CommentByIDAny(commentID, taskID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if c.IsDeleted {
			return ErrAlreadyDeleted
		}
		updated = c
		if c.Content == content {
			return nil
		}
		modified = true
		c.Content = content
		c.UpdatedBy = &actorID
		return tx.SaveComment(c)
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, false, ErrTaskNotFound
		case errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrAlreadyDeleted):
			return nil, false, err
		default:
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if modified {
		s.notifyTaskOwner(ctx, op, parent, "Comment Update!",
			fmt.Sprintf("A comment on your task %q has been updated.", parent.Title))
	}
	return updated, modified, nil
}

// SoftDelete marks the comment deleted and stamps the deleting actor.
func (s *Service) SoftDelete(ctx context.Context, actorID, commentID, taskID string) error {
	const op = "comment.Service.SoftDelete"

	var parent *models.Task
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.TaskByID(taskID)
		if err != nil {
			return err
		}
		parent = t

		c, err := tx.CommentByIDAny(commentID, taskID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if c.IsDeleted {
			return ErrAlreadyDeleted
		}
		now := time.Now()
		c.IsDeleted = true
		c.DeletedAt = &now
		c.DeletedBy = &actorID
		return tx.SaveComment(c)
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return ErrTaskNotFound
		case errors.Is(err, ErrCommentNotFound), errors.Is(err, ErrAlreadyDeleted):
			return err
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.notifyTaskOwner(ctx, op, parent, "Comment Deletion!",
		fmt.Sprintf("A comment on your task %q has been deleted.", parent.Title))
	return nil
}

func (s *Service) notifyTaskOwner(ctx context.Context, op string, t *models.Task, title, body string) {
	target := t.UserID
	if target == nil {
		target = t.CreatedBy
	}
	if target == nil {
		return
	}
	u, err := s.store.UserByID(*target)
	if err != nil || u.PushToken == nil {
		return
	}
	if err := s.pusher.Push(ctx, *u.PushToken, title, body); err != nil {
		s.log.WithError(err).WithField("operation", op).Error("failed to send comment notification")
	}
}
