package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
	"github.com/jwalitptl/vetclinic-api/pkg/logger"
)

// ErrorHandler logs the errors handlers attached to the context. Server
// errors are logged at error level; client errors only at debug. If no
// response was written yet the last error is rendered.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		l := logger.FromContext(c.Request.Context())
		for _, e := range c.Errors {
			status := http.StatusInternalServerError
			if appErr, ok := apperrors.As(e.Err); ok {
				status = appErr.StatusCode()
			}

			event := l.Debug()
			if status >= http.StatusInternalServerError {
				event = l.Error()
			}
			event.
				Err(e.Err).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", status).
				Msg("request error")
		}

		if !c.Writer.Written() {
			httputil.RespondWithError(c, c.Errors.Last().Err)
		}
	}
}
