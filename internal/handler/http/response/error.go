package response

import (
	"errors"
	"net/http"

	"github.com/venueops/timecard-recon-go/internal/domain/recon"
	"github.com/venueops/timecard-recon-go/internal/domain/venue"
	"github.com/venueops/timecard-recon-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, recon.ErrValidationFailed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, recon.ErrInvalidDateRange):
		BadRequest(w, "From date is after to date", nil)
	case errors.Is(err, recon.ErrNoActiveVenues):
		BadRequest(w, "No active venues registered", nil)
	case errors.Is(err, recon.ErrRunNotFound):
		NotFound(w, "Reconciliation run not found")
	case errors.Is(err, venue.ErrVenueNotFound):
		NotFound(w, "Venue not found")
	case errors.Is(err, recon.ErrAuthenticationFailed):
		BadGateway(w, "Upstream authentication failed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
