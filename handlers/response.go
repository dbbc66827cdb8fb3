package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"abinterior/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ApiResponse is the envelope of every JSON answer.
type ApiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

const unexpectedError = "An unexpected error occurred."

func writeJSON(w http.ResponseWriter, status int, resp ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func formError(msg string) map[string][]string {
	return map[string][]string{"_form": {msg}}
}

// writeError maps domain errors to status codes. Anything unrecognised is
// logged with the route parameters and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Errors: ve.Fields})
	case errors.Is(err, models.ErrInvalidImport):
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Errors: formError(err.Error())})
	case errors.Is(err, models.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Not found"})
	case errors.Is(err, models.ErrConflict):
		writeJSON(w, http.StatusConflict, ApiResponse{
			Success: false,
			Message: "This transaction was changed by someone else. Reload and try again.",
		})
	case errors.Is(err, models.ErrUnavailable):
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("store unavailable")
		writeJSON(w, http.StatusServiceUnavailable, ApiResponse{
			Success: false,
			Message: "The database is unavailable. Please try again later.",
		})
	default:
		ev := log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path)
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			for i, key := range rctx.URLParams.Keys {
				ev = ev.Str(key, rctx.URLParams.Values[i])
			}
		}
		ev.Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, ApiResponse{Success: false, Errors: formError(unexpectedError)})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "Invalid request payload: " + err.Error(),
		})
		return false
	}
	return true
}
