// Package web holds the JSON response helpers and the structured error
// envelope shared by every handler.
package web

import (
	"encoding/json"
	"net/http"
)

// Error kinds carried in the envelope.
const (
	KindValidation     = "validation_error"
	KindAuthentication = "authentication_error"
	KindUnauthorized   = "unauthorized"
	KindNotFound       = "not_found"
	KindInternal       = "internal_error"
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorBody is the single error envelope used for every non-2xx response.
type ErrorBody struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes the error envelope with the given kind and message.
func Error(w http.ResponseWriter, status int, kind, message string) {
	JSON(w, status, ErrorBody{Kind: kind, Message: message})
}

// ValidationFailed writes a 400 with the collected field errors.
func ValidationFailed(w http.ResponseWriter, fields []FieldError) {
	JSON(w, http.StatusBadRequest, ErrorBody{
		Kind:    KindValidation,
		Message: "invalid input",
		Fields:  fields,
	})
}

// Message writes a plain {"message": ...} body, used by mutation handlers.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}
