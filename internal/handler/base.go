package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/vetclinic-api/pkg/errors"
	"github.com/jwalitptl/vetclinic-api/pkg/httputil"
	"github.com/jwalitptl/vetclinic-api/pkg/validator"
)

// ParseID reads the :id path parameter, answering 400 when it is not a
// positive integer.
func ParseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid id", err))
		return 0, false
	}
	return id, true
}

// BindJSON decodes and validates the request body into dst. Validation
// failures answer 400 with one message per field.
func BindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if fields := validator.Fields(err); fields != nil {
		httputil.RespondWithError(c, apperrors.Validation(fields, err))
	} else {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
	}
	return false
}
