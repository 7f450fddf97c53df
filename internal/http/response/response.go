package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Message   string `json:"message"`
	MessageAr string `json:"message_ar,omitempty"`
	Code      string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondErrorLocalized carries a translated message alongside the English one.
func RespondErrorLocalized(c *gin.Context, status int, code string, msg string, msgAr string) {
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			MessageAr: msgAr,
			Code:      code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
