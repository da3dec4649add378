package common

import (
	"errors"
	"net/http"

	apperrors "sbml-builder/backend/common/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the only failure shape the API exposes.
type ErrorResponse struct {
	Error string `json:"error"`
}

// 时间格式常量
const (
	RFC3339MilliZ = "2006-01-02T15:04:05.000Z07:00"
)

// RespError maps err onto 404 for missing records and 500 for everything else.
func RespError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, apperrors.ErrModelNotFound) || errors.Is(err, apperrors.ErrNotFound) {
		status = http.StatusNotFound
	}
	RespErrorStr(c, status, err.Error())
}

// RespErrorStr writes {"error": msg} with the given status.
func RespErrorStr(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: msg})
}
