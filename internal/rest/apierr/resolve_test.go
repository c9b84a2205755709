package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/internal/services/comment"
	"github.com/markgregr/taskflow_REST_server/internal/services/task"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		key    string
	}{
		{"user exists", auth.ErrUserExists, http.StatusConflict, "user.exists"},
		{"user not found", auth.ErrUserNotFound, http.StatusNotFound, "user.not_found"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "user.invalid_credentials"},
		{"already logged out", auth.ErrAlreadyLoggedOut, http.StatusUnauthorized, "user.already_logged_out"},
		{"incorrect old password", auth.ErrIncorrectOldPassword, http.StatusUnauthorized, "user.incorrect_old_password"},
		{"password reused", auth.ErrPasswordReused, http.StatusForbidden, "user.password_reused"},
		{"invalid reset token", auth.ErrInvalidResetToken, http.StatusBadRequest, "user.invalid_reset_token"},
		{"token invalid", auth.ErrInvalidToken, http.StatusUnauthorized, "user.token_invalid"},
		{"token blacklisted", auth.ErrTokenBlacklisted, http.StatusUnauthorized, "user.token_blacklisted"},
		{"task not found", task.ErrTaskNotFound, http.StatusNotFound, "task.no_task"},
		{"parent not found", task.ErrParentNotFound, http.StatusNotFound, "task.no_task"},
		{"self parent", task.ErrSelfParent, http.StatusBadRequest, "task.self_parent"},
		{"task already deleted", task.ErrAlreadyDeleted, http.StatusBadRequest, "task.already_deleted"},
		{"invalid status", task.ErrInvalidStatus, http.StatusBadRequest, "task.invalid_status"},
		{"assignee not found", task.ErrAssigneeNotFound, http.StatusNotFound, "task.assignee_not_found"},
		{"comment task not found", comment.ErrTaskNotFound, http.StatusNotFound, "task.no_task"},
		{"comment not found", comment.ErrCommentNotFound, http.StatusNotFound, "comment.no_comment"},
		{"comment already deleted", comment.ErrAlreadyDeleted, http.StatusBadRequest, "comment.already_deleted"},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError, "common.server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.err)
			if got.Status() != tc.status {
				t.Errorf("status: got %d, want %d", got.Status(), tc.status)
			}
			if got.Key() != tc.key {
				t.Errorf("key: got %q, want %q", got.Key(), tc.key)
			}
		})
	}
}

func TestResolveWrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("op context"), task.ErrSelfParent)
	got := Resolve(wrapped)
	if got.Key() != "task.self_parent" {
		t.Errorf("wrapped sentinel not resolved: %q", got.Key())
	}
}
