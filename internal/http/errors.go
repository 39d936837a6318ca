package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"messagely/internal/domain"
)

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// writeError maps a domain error onto a status code and the
// {"error":{message,status}} body. Unknown errors become a generic 500;
// the underlying error is logged by the caller, never returned to the client.
func writeError(c *gin.Context, err error) {
	status, message := statusFor(err)
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{
		Message: message,
		Status:  status,
	}})
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMessageNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
