package locale

import (
	"embed"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// ContextKey is the gin context key under which the per-request localizer
// is stored by the locale middleware.
const ContextKey = "localizer"

// NewBundle loads the embedded message catalogs. English is the fallback
// language.
func NewBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/en.json", "locales/ru.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, err
		}
	}
	return bundle, nil
}

// T resolves a message key for the request locale. Handlers emit keys
// only; unknown keys fall back to the key itself.
func T(c *gin.Context, key string) string {
	v, ok := c.Get(ContextKey)
	if !ok {
		return key
	}
	localizer, ok := v.(*i18n.Localizer)
	if !ok {
		return key
	}
	return Resolve(localizer, key)
}

// Resolve localizes a single message key against a prepared localizer.
func Resolve(localizer *i18n.Localizer, key string) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return key
	}
	return msg
}
