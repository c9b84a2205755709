package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/markgregr/taskflow_REST_server/internal/models"
	"github.com/markgregr/taskflow_REST_server/internal/rest/apierr"
	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/helper"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

const (
	actorKey = "actor"
	tokenKey = "actorToken"
)

// Authenticate is the session guard in front of every protected route:
// extract the bearer token, verify it, resolve a live user, and reject
// blacklisted or superseded sessions. On success the resolved actor and
// the presented token are attached to the request context for handlers to
// pick up explicitly; the check itself has no side effects.
func Authenticate(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helper.ExtractTokenFromHeaders(c)
		if token == "" {
			response.HandleError(response.NewUnauthorizedError("user.token_missing"), c)
			return
		}

		user, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.HandleError(apierr.Resolve(err), c)
			return
		}

		c.Set(actorKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// Actor returns the authenticated user attached by Authenticate.
func Actor(c *gin.Context) *models.User {
	return c.MustGet(actorKey).(*models.User)
}

// Token returns the bearer token the current request authenticated with.
func Token(c *gin.Context) string {
	return c.MustGet(tokenKey).(string)
}
