package response

import (
	"errors"
	"net/http"

	"github.com/shriajj/roster-backend-go/internal/domain/auth"
	"github.com/shriajj/roster-backend-go/internal/domain/roster"
	"github.com/shriajj/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Roster domain errors
	case errors.Is(err, roster.ErrInvalidWeekKey):
		BadRequest(w, "Invalid week key", nil)
	case errors.Is(err, roster.ErrWeekNotFound):
		NotFound(w, "Week not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
