package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobly/internal/domain"
	"jobly/internal/service"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type ErrorResponse struct {
	Error errorBody `json:"error"`
}

// writeError maps err onto a status code. Unclassified errors are attached to
// the context for the access log and reported as a bare 500.
func writeError(c *gin.Context, err error) {
	var de *domain.Error
	switch {
	case errors.As(err, &de):
		writeErrorStatus(c, statusFor(de.Kind), de.Message)
	case errors.Is(err, service.ErrStorageUnavailable):
		writeErrorStatus(c, http.StatusServiceUnavailable, err.Error())
	default:
		_ = c.Error(err)
		writeErrorStatus(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func writeErrorStatus(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: errorBody{Message: message, Status: status}})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
