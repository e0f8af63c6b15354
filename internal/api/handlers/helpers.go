package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/apperrors"
	"fuel-route-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("response encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeAppError maps a classified service error onto the HTTP surface.
// Unclassified errors become opaque 500s; their cause goes to the log only.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		status = http.StatusBadRequest
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("req_id", obs.RequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	writeError(w, r, status, apperrors.MessageOf(err))
}
