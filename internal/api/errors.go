package api

import (
	"alcyxob/fitness-assistant/internal/llm"
	"alcyxob/fitness-assistant/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to status codes. Unexpected errors
// are logged and hidden behind a generic message.
func respondServiceError(c *gin.Context, op string, err error) {
	var perr *llm.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalidWorkout),
		errors.Is(err, service.ErrProfileInvalid),
		errors.Is(err, service.ErrEmptyMessage):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &perr):
		log.Printf("ERROR: %s: %v", op, err)
		abortWithError(c, http.StatusBadGateway, "The assistant is unavailable right now. Please try again later.")
	default:
		log.Printf("ERROR: %s: %v", op, err)
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
