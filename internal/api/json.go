package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/northgard/sigil/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error  string            `json:"error" validate:"required"`
	Fields map[string]string `json:"fields,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps domain errors to HTTP statuses. Validation failures carry
// a per-field message map so the form can attach them to inputs.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for k, v := range verrs {
			fields[k] = v.Error()
		}
		writeJSON(w, http.StatusUnprocessableEntity, errResponse{Error: "validation failed", Fields: fields})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("checksum mismatch"))
	case errors.Is(err, apperr.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("already exists"))
	case errors.Is(err, apperr.ErrLastView):
		writeJSON(w, http.StatusConflict, errorBody("cannot delete the last view"))
	case errors.Is(err, apperr.ErrSaveInFlight):
		writeJSON(w, http.StatusConflict, errorBody("a save is already in flight"))
	case apperr.IsIndexOutOfRange(err):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case apperr.IsStoreError(err):
		slog.Error("store operation failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("storage unavailable"))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
