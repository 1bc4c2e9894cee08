package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequestBody = errors.New("invalid request body")
	errTaskIDRequired     = errors.New("task id required")
)

type apiError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func (e apiError) withDetail(err error) apiError {
	if err != nil {
		e.Detail = err.Error()
	}
	return e
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, err)
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalError(message string) apiError {
	return newAPIError(http.StatusInternalServerError, message)
}
