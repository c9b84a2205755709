package task

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
	ErrTaskNotFound     = errors.New("task not found")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrSelfParent       = errors.New("task cannot be its own parent")
	ErrAlreadyDeleted   = errors.New("task already deleted")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrAssigneeNotFound = errors.New("assignee not found")
)

// Service implements the ownership model: tasks are created unassigned,
// an assignment step sets the owner, and visibility is scoped to the
// assignee (or the creator while unassigned). Deletion is soft everywhere
// and cascades explicitly to subtasks and comments.
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

type CreateInput struct {
	Title        string
	Description  string
	DueDate      time.Time
	Priority     models.TaskPriority
	Status       models.TaskStatus
	Category     models.TaskCategory
	ParentTaskID *string
}

type UpdateInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	Priority     *models.TaskPriority
	Status       *models.TaskStatus
	Category     *models.TaskCategory
	ParentTaskID *string
}

// Create validates the parent reference and persists a new, unassigned
// task. The creator gets a push notification if they registered a device.
func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (*models.Task, error) {
	const op = "task.Service.Create"

	if in.ParentTaskID != nil {
		if _, err := s.store.VisibleTaskByID(*in.ParentTaskID, actorID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	status := in.Status
	if status == "" {
		status = models.TaskStatusTodo
	}

	t := &models.Task{
		Title:        in.Title,
		Description:  in.Description,
		DueDate:      in.DueDate,
		Priority:     in.Priority,
		Status:       status,
		Category:     in.Category,
		ParentTaskID: in.ParentTaskID,
		CreatedBy:    &actorID,
	}
	if err := s.store.CreateTask(t); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.pushToUser(ctx, op, actorID, "Task Creation!",
		fmt.Sprintf("Your task %q has been successfully created.", t.Title))
	return t, nil
}

func (s *Service) List(ctx context.Context, actorID string, filter storage.TaskFilter) ([]models.Task, error) {
	const op = "task.Service.List"

	tasks, err := s.store.ListTasks(actorID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tasks, nil
}

func (s *Service) GetByID(ctx context.Context, actorID, id string) (*models.Task, error) {
	const op = "task.Service.GetByID"

	t, err := s.store.VisibleTaskByID(id, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Update applies a partial update inside one transaction. Supplying only
// values identical to the current row is a distinct "not modified" outcome
// and performs no write at all.
func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) (*models.Task, bool, error) {
	const op = "task.Service.Update"

	if in.ParentTaskID != nil && *in.ParentTaskID == id {
		return nil, false, ErrSelfParent
	}

	var (
		updated  *models.Task
		modified bool
	)
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.VisibleTaskByIDAny(id, actorID)
		if err != nil {
			return err
		}
		if t.IsDeleted {
			return ErrAlreadyDeleted
		}

		if in.ParentTaskID != nil && (t.ParentTaskID == nil || *t.ParentTaskID != *in.ParentTaskID) {
			if _, err := tx.VisibleTaskByID(*in.ParentTaskID, actorID); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return ErrParentNotFound
				}
				return err
			}
		}

		modified = applyUpdate(t, in)
		updated = t
		if !modified {
			return nil
		}
		t.UpdatedBy = &actorID
		return tx.SaveTask(t)
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, false, ErrTaskNotFound
		case errors.Is(err, ErrAlreadyDeleted), errors.Is(err, ErrParentNotFound):
			return nil, false, err
		default:
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if modified {
		s.notifyAssignee(ctx, op, updated, "Task Update!",
			fmt.Sprintf("Your task %q has been updated.", updated.Title))
	}
	return updated, modified, nil
}

// UpdateStatus moves a task through the status enum. An out-of-enum value
// fails before any read; resubmitting the current status is "not modified".
func (s *Service) UpdateStatus(ctx context.Context, actorID, id string, status models.TaskStatus) (*models.Task, bool, error) {
	const op = "task.Service.UpdateStatus"

	if !status.Valid() {
		return nil, false, ErrInvalidStatus
	}

	var (
		updated  *models.Task
		modified bool
	)
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.VisibleTaskByIDAny(id, actorID)
		if err != nil {
			return err
		}
		if t.IsDeleted {
			return ErrAlreadyDeleted
		}
		updated = t
		if t.Status == status {
			return nil
		}
		modified = true
		t.Status = status
		t.UpdatedBy = &actorID
		return tx.SaveTask(t)
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, false, ErrTaskNotFound
		case errors.Is(err, ErrAlreadyDeleted):
			return nil, false, err
		default:
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if modified {
		s.notifyAssignee(ctx, op, updated, "Task Status Update!",
			fmt.Sprintf("Status of your task %q is now %s.", updated.Title, updated.Status))
	}
	return updated, modified, nil
}

// Assign sets the task owner and notifies the new assignee.
func (s *Service) Assign(ctx context.Context, actorID, taskID, userID string) (*models.Task, error) {
	return s.assign(ctx, "task.Service.Assign", actorID, taskID, userID, "Task Assignment!")
}

// Reassign transfers ownership to another user.
func (s *Service) Reassign(ctx context.Context, actorID, taskID, userID string) (*models.Task, error) {
	return s.assign(ctx, "task.Service.Reassign", actorID, taskID, userID, "Task Reassignment!")
}

func (s *Service) assign(ctx context.Context, op, actorID, taskID, userID, title string) (*models.Task, error) {
	var (
		updated  *models.Task
		assignee *models.User
	)
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.TaskByID(taskID)
		if err != nil {
			return err
		}
		u, err := tx.UserByID(userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrAssigneeNotFound
			}
			return err
		}
		t.UserID = &u.ID
		t.UpdatedBy = &actorID
		if err := tx.SaveTask(t); err != nil {
			return err
		}
		updated, assignee = t, u
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrTaskNotFound
		case errors.Is(err, ErrAssigneeNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if assignee.PushToken != nil {
		body := fmt.Sprintf("Task %q has been assigned to you.", updated.Title)
		if err := s.pusher.Push(ctx, *assignee.PushToken, title, body); err != nil {
			s.log.WithError(err).WithField("operation", op).Error("failed to send assignment notification")
		}
	}
	return updated, nil
}

// SoftDelete marks the task deleted and walks the subtask tree, marking
// every live descendant and its comments. Nothing is physically removed.
func (s *Service) SoftDelete(ctx context.Context, actorID, id string) error {
	const op = "task.Service.SoftDelete"

	var deleted *models.Task
	err := s.store.Transaction(func(tx *storage.Storage) error {
		t, err := tx.VisibleTaskByIDAny(id, actorID)
		if err != nil {
			return err
		}
		if t.IsDeleted {
			return ErrAlreadyDeleted
		}
		deleted = t

		now := time.Now()
		queue := []*models.Task{t}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			cur.IsDeleted = true
			cur.DeletedAt = &now
			cur.DeletedBy = &actorID
			if err := tx.SaveTask(cur); err != nil {
				return err
			}
			if err := tx.MarkTaskCommentsDeleted(cur.ID, actorID, now); err != nil {
				return err
			}

			children, err := tx.LiveSubtasks(cur.ID)
			if err != nil {
				return err
			}
			for i := range children {
				queue = append(queue, &children[i])
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return ErrTaskNotFound
		case errors.Is(err, ErrAlreadyDeleted):
			return err
		default:
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	s.notifyAssignee(ctx, op, deleted, "Task Deletion!",
		fmt.Sprintf("Your task %q has been deleted.", deleted.Title))
	return nil
}

// SendDueReminders pushes a reminder for every non-deleted task due on the
// given day. One failed delivery never aborts the rest of the scan.
func (s *Service) SendDueReminders(ctx context.Context, day time.Time) error {
	const op = "task.Service.SendDueReminders"

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	tasks, err := s.store.TasksDueBetween(from, from.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for i := range tasks {
		t := &tasks[i]
		if t.User == nil || t.User.PushToken == nil {
			continue
		}
		body := fmt.Sprintf("Your task %q is due on %s. Please complete it soon.",
			t.Title, t.DueDate.Format("2006-01-02"))
		if err := s.pusher.Push(ctx, *t.User.PushToken, "Task Due Reminder", body); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"operation": op,
				"task_id":   t.ID,
			}).Error("failed to send due reminder")
		}
	}
	return nil
}

// notifyAssignee pushes to the task assignee, falling back to the creator
// for unassigned tasks.
func (s *Service) notifyAssignee(ctx context.Context, op string, t *models.Task, title, body string) {
	target := t.UserID
	if target == nil {
		target = t.CreatedBy
	}
	if target == nil {
		return
	}
	s.pushToUser(ctx, op, *target, title, body)
}

func (s *Service) pushToUser(ctx context.Context, op, userID, title, body string) {
	u, err := s.store.UserByID(userID)
	if err != nil || u.PushToken == nil {
		return
	}
	if err := s.pusher.Push(ctx, *u.PushToken, title, body); err != nil {
		s.log.WithError(err).WithField("operation", op).Error("failed to send push notification")
	}
}

func applyUpdate(t *models.Task, in UpdateInput) bool {
	modified := false
	if in.Title != nil && *in.Title != t.Title {
		t.Title = *in.Title
		modified = true
	}
	if in.Description != nil && *in.Description != t.Description {
		t.Description = *in.Description
		modified = true
	}
	if in.DueDate != nil && !in.DueDate.Equal(t.DueDate) {
		t.DueDate = *in.DueDate
		modified = true
	}
	if in.Priority != nil && *in.Priority != t.Priority {
		t.Priority = *in.Priority
		modified = true
	}
	if in.Status != nil && *in.Status != t.Status {
		t.Status = *in.Status
		modified = true
	}
	if in.Category != nil && *in.Category != t.Category {
		t.Category = *in.Category
		modified = true
	}
	if in.ParentTaskID != nil && (t.ParentTaskID == nil || *t.ParentTaskID != *in.ParentTaskID) {
		t.ParentTaskID = in.ParentTaskID
		modified = true
	}
	return modified
}
