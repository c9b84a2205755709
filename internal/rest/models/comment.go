package models

import (
	internal "github.com/markgregr/taskflow_REST_server/internal/models"
)

type Comment struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Content   string `json:"content"`
	Author    *User  `json:"author"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func CommentFromModel(c *internal.Comment) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:        c.ID,
		TaskID:    c.TaskID,
		Content:   c.Content,
		Author:    UserFromModel(c.User),
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func CommentListFromModels(comments []internal.Comment) []Comment {
	list := make([]Comment, 0, len(comments))
	for i := range comments {
		list = append(list, *CommentFromModel(&comments[i]))
	}
	return list
}
