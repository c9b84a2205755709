package response

import (
	"github.com/gin-gonic/gin"
)

// TranslatorKey is the gin context key under which the locale middleware
// stores the per-request message translator.
const TranslatorKey = "messageTranslator"

// Translator resolves a message key into localized text.
type Translator func(key string) string

// HandleError localizes the error's message key for the request locale and
// writes the JSON error body. Internal details never reach the client.
func HandleError(err Error, c *gin.Context) {
	body := gin.H{"message": translate(c, err.Key())}
	if details := err.Details(); len(details) > 0 {
		body["errors"] = details
	}
	c.AbortWithStatusJSON(err.Status(), body)
}

// translate falls back to the raw key when no translator is installed.
func translate(c *gin.Context, key string) string {
	v, ok := c.Get(TranslatorKey)
	if !ok {
		return key
	}
	t, ok := v.(Translator)
	if !ok {
		return key
	}
	return t(key)
}
