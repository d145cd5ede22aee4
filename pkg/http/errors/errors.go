// Package errors writes the JSON failure envelope shared by every endpoint.
package errors

import (
	"encoding/json"
	"net/http"
)

// FieldError names one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the failure envelope. Error repeats the HTTP status.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   int          `json:"error"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// RespondError writes the envelope with status; an empty message uses the default.
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, ErrorResponse{Error: status, Message: message})
}

// RespondValidation writes a 422 listing every rejected field.
func RespondValidation(w http.ResponseWriter, fields []FieldError) {
	write(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:   http.StatusUnprocessableEntity,
		Message: MsgUnprocessable,
		Fields:  fields,
	})
}

// RespondInternalError writes a 500 without leaking the cause.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, MsgInternal)
}

// RespondNotFound writes a 404.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondBadRequest writes a 400.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondServiceUnavailable writes a 503.
func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

func write(w http.ResponseWriter, status int, body ErrorResponse) {
	if body.Message == "" {
		body.Message = DefaultMessage(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
