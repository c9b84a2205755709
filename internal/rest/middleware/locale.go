package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/markgregr/taskflow_REST_server/internal/lib/locale"
	"github.com/markgregr/taskflow_REST_server/pkg/rest/response"
)

// Locale attaches a per-request localizer resolving message keys against
// the ?lang query parameter first, then Accept-Language. The response
// writer gets the same localizer through its translator hook so that
// pkg/rest/response needs no locale import of its own.
func Locale(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		localizer := i18n.NewLocalizer(bundle, c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(locale.ContextKey, localizer)
		c.Set(response.TranslatorKey, response.Translator(func(key string) string {
			return locale.Resolve(localizer, key)
		}))
		c.Next()
	}
}
