package models

import (
	"time"

	internal "github.com/markgregr/taskflow_REST_server/internal/models"
)

type Task struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	DueDate      string    `json:"dueDate"`
	Priority     string    `json:"priority"`
	Status       string    `json:"status"`
	Category     string    `json:"category"`
	ParentTaskID *string   `json:"parentTaskId"`
	User         *User     `json:"user"`
	Subtasks     []Task    `json:"subtasks,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

func TaskFromModel(t *internal.Task) *Task {
	if t == nil {
		return nil
	}

	task := &Task{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      formatTime(t.DueDate),
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		Category:     string(t.Category),
		ParentTaskID: t.ParentTaskID,
		User:         UserFromModel(t.User),
		CreatedAt:    formatTime(t.CreatedAt),
		UpdatedAt:    formatTime(t.UpdatedAt),
	}

	for i := range t.Subtasks {
		if t.Subtasks[i].IsDeleted {
			continue
		}
		task.Subtasks = append(task.Subtasks, *TaskFromModel(&t.Subtasks[i]))
	}

	for i := range t.Comments {
		if t.Comments[i].IsDeleted {
			continue
		}
		task.Comments = append(task.Comments, *CommentFromModel(&t.Comments[i]))
	}

	return task
}

func TaskListFromModels(tasks []internal.Task) []Task {
	list := make([]Task, 0, len(tasks))
	for i := range tasks {
		list = append(list, *TaskFromModel(&tasks[i]))
	}
	return list
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
