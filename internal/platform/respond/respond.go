package respond

import (
	"encoding/json"
	"net/http"
)

// Códigos de error expuestos en el body JSON.
const (
	CodeInvalidJSON       = "invalid_json"
	CodeInvalidInput      = "invalid_input"
	CodeInvalidDateRange  = "invalid_date_range"
	CodeInvalidCapacity   = "invalid_capacity"
	CodeDateOutOfRange    = "date_out_of_range"
	CodeVenueConflict     = "venue_conflict"
	CodeDuplicateEvent    = "duplicate_event"
	CodeIllegalTransition = "illegal_transition"
	CodeNotFound          = "not_found"
	CodeUnauthorized      = "unauthorized"
	CodeInternalError     = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, code, msg string) {
	JSON(w, status, errorResponse{Error: msg, Code: code})
}

func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
}

func Internal(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
