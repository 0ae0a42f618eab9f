package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the uniform envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// LogInternalError logs the real error server-side and answers the client
// with a generic message so storage details never leak.
func LogInternalError(c *gin.Context, logger *zap.Logger, action string, err error) {
	logger.Error(action+" failed", zap.Error(err), zap.String("path", c.FullPath()))
	InternalServerError(c, "an internal error occurred")
}

// FailFromError maps a service-layer error to the matching HTTP response.
// Unknown errors become a generic 500 and get logged.
func FailFromError(c *gin.Context, logger *zap.Logger, action string, err error) {
	if ve, ok := AsValidationError(err); ok {
		BadRequest(c, ve.Error())
		return
	}
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrQuestionNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrQuizUnavailable):
		Forbidden(c, err.Error())
	case errors.Is(err, ErrDuplicateQuestion), errors.Is(err, ErrDuplicateQuizTitle), errors.Is(err, ErrEmailRegistered):
		Conflict(c, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountDisabled):
		Unauthorized(c, err.Error())
	case errors.Is(err, ErrAttemptExpired):
		Forbidden(c, err.Error())
	default:
		LogInternalError(c, logger, action, err)
	}
}
