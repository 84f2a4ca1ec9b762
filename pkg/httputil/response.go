package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/vetclinic-api/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response wraps all CRUD API responses
type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// RespondWithError sends an error response and records err on the context
// so the error middleware can log it. Server errors never expose their cause.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	resp := Response{Status: StatusError, Message: "internal server error"}

	if appErr, ok := errors.As(err); ok {
		statusCode = appErr.StatusCode()
		if statusCode < http.StatusInternalServerError {
			resp.Message = appErr.Message
			resp.Errors = appErr.Fields
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(statusCode, resp)
}
