// Package apierr translates service-layer sentinel errors into the HTTP
// error taxonomy. It lives on the internal side of the boundary so that
// pkg/rest/response stays free of internal imports.
package apierr

import (
	"errors"

	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/internal/services/comment"
	"github.com/markgregr/taskflow_REST_server/internal/services/task"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

// Resolve maps a service-layer sentinel to the HTTP error taxonomy.
// Anything unrecognized becomes an opaque internal error.
func Resolve(err error) response.Error {
	switch {
	case errors.Is(err, auth.ErrUserExists):
		return response.NewConflictError("user.exists")
	case errors.Is(err, auth.ErrUserNotFound):
		return response.NewNotFoundError("user.not_found")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return response.NewUnauthorizedError("user.invalid_credentials")
	case errors.Is(err, auth.ErrAlreadyLoggedOut):
		return response.NewUnauthorizedError("user.already_logged_out")
	case errors.Is(err, auth.ErrIncorrectOldPassword):
		return response.NewUnauthorizedError("user.incorrect_old_password")
	case errors.Is(err, auth.ErrPasswordReused):
		return response.NewForbiddenError("user.password_reused")
	case errors.Is(err, auth.ErrInvalidResetToken):
		return response.NewBadRequestError("user.invalid_reset_token")
	case errors.Is(err, auth.ErrInvalidToken):
		return response.NewUnauthorizedError("user.token_invalid")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return response.NewUnauthorizedError("user.token_blacklisted")

	case errors.Is(err, task.ErrTaskNotFound), errors.Is(err, task.ErrParentNotFound):
		return response.NewNotFoundError("task.no_task")
	case errors.Is(err, task.ErrSelfParent):
		return response.NewBadRequestError("task.self_parent")
	case errors.Is(err, task.ErrAlreadyDeleted):
		return response.NewBadRequestError("task.already_deleted")
	case errors.Is(err, task.ErrInvalidStatus):
		return response.NewBadRequestError("task.invalid_status")
	case errors.Is(err, task.ErrAssigneeNotFound):
		return response.NewNotFoundError("task.assignee_not_found")

	case errors.Is(err, comment.ErrTaskNotFound):
		return response.NewNotFoundError("task.no_task")
	case errors.Is(err, comment.ErrCommentNotFound):
		return response.NewNotFoundError("comment.no_comment")
	case errors.Is(err, comment.ErrAlreadyDeleted):
		return response.NewBadRequestError("comment.already_deleted")

	default:
		return response.NewInternalError()
	}
}
