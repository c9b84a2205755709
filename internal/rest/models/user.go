package models

import (
	internal "github.com/markgregr/taskflow_REST_server/internal/models"
)

type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func UserFromModel(u *internal.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}
