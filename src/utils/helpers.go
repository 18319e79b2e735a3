package utils

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"filmoasis/src/logging"
)

// ConvertStringToInt64 parses a positive decimal id.
func ConvertStringToInt64(str string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64)
	if err != nil || i <= 0 {
		return 0, strconv.ErrSyntax
	}
	return i, nil
}

// ParamID reads a positive integer path parameter, reporting a validation
// error naming the parameter otherwise.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := ConvertStringToInt64(c.Param(name))
	if err != nil {
		return 0, Invalid("Invalid " + name)
	}
	return id, nil
}

// BindJson is a function to bind the json request
func BindJson(c *gin.Context, request interface{}) error {
	if err := c.ShouldBindJSON(request); err != nil {
		return Invalid("Invalid request body")
	}
	return nil
}

// RespondError writes {"error": msg} with the status chosen by ToServiceError.
// Server-side failures are logged with the underlying cause.
func RespondError(c *gin.Context, err error) {
	se := ToServiceError(err)
	if se.StatusCode >= http.StatusInternalServerError {
		logging.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(se.StatusCode, gin.H{"error": se.Message})
}
