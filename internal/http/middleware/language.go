package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/i18n"
	"github.com/clintwin/clintwin-backend/internal/platform/ctxutil"
)

// Language negotiates the response language once per request and stashes it
// in the request context for the service layer.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Language(c)
		c.Set("lang", lang)
		c.Request = c.Request.WithContext(ctxutil.WithLanguage(c.Request.Context(), lang))
		c.Next()
	}
}

// Lang reads the negotiated language off the gin context.
func Lang(c *gin.Context) string {
	if lang, ok := c.Get("lang"); ok {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return i18n.LangEnglish
}
