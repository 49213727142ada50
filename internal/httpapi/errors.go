package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"hrms-engine/internal/api"
	"hrms-engine/internal/jobs"
	"hrms-engine/internal/linkedin"
)

// Envelope mirrors the remote API's response shape so the UI handles one
// format end to end.
type Envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    any              `json:"data,omitempty"`
	Errors  []api.FieldError `json:"errors,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteData(w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// WriteFailure maps any error from the state slices to a status + envelope.
// Local validation errors are 400s; everything else relays the normalized
// remote failure.
func WriteFailure(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		if apiErr.IsNetwork() {
			status = http.StatusServiceUnavailable
		} else {
			status = http.StatusBadRequest
		}
		WriteJSON(w, status, Envelope{Message: apiErr.Message, Errors: apiErr.Errors})
		return
	case errors.Is(err, jobs.ErrNoPlatforms),
		errors.Is(err, jobs.ErrImmutableField),
		errors.Is(err, jobs.ErrMissingFields),
		errors.Is(err, linkedin.ErrNotConnected),
		errors.Is(err, linkedin.ErrTokenExpired):
		status = http.StatusUnprocessableEntity
	}
	WriteJSON(w, status, Envelope{Message: err.Error()})
}
